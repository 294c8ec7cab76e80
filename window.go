package glrender

// Key names the keyboard keys the input layer tracks.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeySpace
	KeyLeftShift
	KeyLeftControl
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyTab
	KeyEscape
	KeyEnter
	Key1
	Key2
	keyCount
)

// Window is the platform window the frame loop drives. The GL context it owns
// must be current on the calling OS thread.
type Window interface {
	ShouldClose() bool
	SetShouldClose(close bool)
	PollEvents()
	SwapBuffers()
	KeyPressed(key Key) bool
	CursorPos() (x, y float64)
	SetCursorCaptured(captured bool)
	// Size returns the framebuffer size in pixels.
	Size() (width, height int)
	// OnResize registers fn to be called with the new framebuffer size.
	OnResize(fn func(width, height int))
	Destroy()
}

// WindowState is the shared window resource.
type WindowState struct {
	Window       Window
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
}
