package glrender

type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

// Stop ends the frame loop after the current system returns.
func (cmd *Commands) Stop() {
	cmd.app.stop()
}

// Fail records a setup failure. Modules installed after it are skipped and Run
// returns err without running frames.
func (cmd *Commands) Fail(err error) {
	cmd.app.fail(err)
}

// OnShutdown registers fn to run when the app shuts down. Hooks run last
// registered first.
func (cmd *Commands) OnShutdown(fn func()) *Commands {
	cmd.app.onShutdown = append(cmd.app.onShutdown, fn)
	return cmd
}
