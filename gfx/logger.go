package gfx

// Logger is the logging surface the graphics layer needs.
// glrender.DefaultLogger satisfies it.
type Logger interface {
	DebugEnabled() bool
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) DebugEnabled() bool                { return false }
func (nopLogger) Debugf(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any)  {}
