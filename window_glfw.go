package glrender

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindow struct {
	win *glfw.Window
}

var keyToGlfw = map[Key]glfw.Key{
	KeyW:           glfw.KeyW,
	KeyA:           glfw.KeyA,
	KeyS:           glfw.KeyS,
	KeyD:           glfw.KeyD,
	KeyQ:           glfw.KeyQ,
	KeyE:           glfw.KeyE,
	KeySpace:       glfw.KeySpace,
	KeyLeftShift:   glfw.KeyLeftShift,
	KeyLeftControl: glfw.KeyLeftControl,
	KeyUp:          glfw.KeyUp,
	KeyDown:        glfw.KeyDown,
	KeyLeft:        glfw.KeyLeft,
	KeyRight:       glfw.KeyRight,
	KeyTab:         glfw.KeyTab,
	KeyEscape:      glfw.KeyEscape,
	KeyEnter:       glfw.KeyEnter,
	Key1:           glfw.Key1,
	Key2:           glfw.Key2,
}

// createGLWindow opens a window with a 4.1 core profile context and makes the
// context current. The caller must have locked the OS thread.
func createGLWindow(width, height int, title string, vsync bool) (*glfwWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("init glfw: %w", err)
	}

	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	if vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &glfwWindow{win: win}, nil
}

func (w *glfwWindow) ShouldClose() bool         { return w.win.ShouldClose() }
func (w *glfwWindow) SetShouldClose(c bool)     { w.win.SetShouldClose(c) }
func (w *glfwWindow) PollEvents()               { glfw.PollEvents() }
func (w *glfwWindow) SwapBuffers()              { w.win.SwapBuffers() }
func (w *glfwWindow) CursorPos() (x, y float64) { return w.win.GetCursorPos() }
func (w *glfwWindow) Size() (int, int)          { return w.win.GetFramebufferSize() }

func (w *glfwWindow) KeyPressed(key Key) bool {
	k, ok := keyToGlfw[key]
	if !ok {
		return false
	}
	return w.win.GetKey(k) == glfw.Press
}

func (w *glfwWindow) SetCursorCaptured(captured bool) {
	if captured {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		w.win.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *glfwWindow) OnResize(fn func(width, height int)) {
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		fn(width, height)
	})
}

func (w *glfwWindow) Destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

var _ Window = (*glfwWindow)(nil)
