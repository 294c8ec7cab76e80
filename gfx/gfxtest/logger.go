package gfxtest

import (
	"fmt"
)

// Logger collects messages; Debug turns on the context's ordering checks.
type Logger struct {
	Debug    bool
	Debugs   []string
	Warnings []string
}

func (l *Logger) DebugEnabled() bool { return l.Debug }

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.Debugs = append(l.Debugs, fmt.Sprintf(format, args...))
	}
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Warnings = append(l.Warnings, fmt.Sprintf(format, args...))
}
