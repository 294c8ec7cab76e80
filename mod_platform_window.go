package glrender

import (
	"reflect"

	"github.com/gekko3d/glrender/gfx"
	"github.com/gekko3d/glrender/gfx/gldevice"
)

// PlatformWindowModule provides the shared WindowState and the gfx.Context bound
// to the window's GL context. Install is idempotent: if a WindowState resource
// already exists, it is reused.
//
// Window and Device may be set to drive the app without a real display; when
// Window is nil a GLFW window is opened and the GL 4.1 device is loaded.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
	VSync  bool

	Window Window
	Device gfx.Device
}

// NewPlatformWindow creates a module that provides a shared WindowState resource.
// If Width/Height are zero, sensible defaults are used.
func NewPlatformWindow(width, height int, title string) *PlatformWindowModule {
	if width <= 0 {
		width = 1600
	}
	if height <= 0 {
		height = 1200
	}
	if title == "" {
		title = "GL Examples"
	}
	return &PlatformWindowModule{
		Width:  width,
		Height: height,
		Title:  title,
		VSync:  true,
	}
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	t := reflect.TypeOf((*WindowState)(nil)).Elem()
	if _, ok := app.resources[t]; ok {
		return
	}

	win, dev := m.Window, m.Device
	if win == nil {
		gw, err := createGLWindow(m.Width, m.Height, m.Title, m.VSync)
		if err != nil {
			cmd.Fail(err)
			return
		}
		win = gw
	}
	if dev == nil {
		glDev, err := gldevice.New()
		if err != nil {
			win.Destroy()
			cmd.Fail(err)
			return
		}
		app.Logger().Infof("OpenGL %s", glDev.Version())
		dev = glDev
	}
	cmd.OnShutdown(win.Destroy)

	ws := &WindowState{
		Window:       win,
		WindowWidth:  m.Width,
		WindowHeight: m.Height,
		WindowTitle:  m.Title,
	}
	if w, h := win.Size(); w > 0 && h > 0 {
		ws.WindowWidth, ws.WindowHeight = w, h
	}

	ctx := gfx.NewContext(dev, app.Logger())
	win.OnResize(func(width, height int) {
		ws.WindowWidth, ws.WindowHeight = width, height
		ctx.Resize(width, height)
	})

	app.addResources(ws, ctx)
	app.Logger().Infof("Created window (%dx%d) '%s'", ws.WindowWidth, ws.WindowHeight, ws.WindowTitle)

	app.UseSystem(
		System(windowCloseSystem).
			InStage(Prelude),
	)
	app.UseSystem(
		System(presentSystem).
			InStage(PostRender),
	)
}

// windowCloseSystem stops the app when the window asks to close or Escape is held.
func windowCloseSystem(ws *WindowState, cmd *Commands) {
	if ws.Window.KeyPressed(KeyEscape) {
		ws.Window.SetShouldClose(true)
	}
	if ws.Window.ShouldClose() {
		cmd.Stop()
	}
}

func presentSystem(ws *WindowState) {
	ws.Window.PollEvents()
	ws.Window.SwapBuffers()
}
