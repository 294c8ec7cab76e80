package glrender

// fakeWindow is a scripted Window. Frames advance on PollEvents.
type fakeWindow struct {
	width, height int

	keys       map[Key]bool
	cursorX    float64
	cursorY    float64
	captured   []bool
	closeAfter int

	shouldClose bool
	polls       int
	swaps       int
	destroyed   int
	resize      func(width, height int)

	// onPoll runs after each poll with the poll count.
	onPoll func(w *fakeWindow, poll int)
}

func newFakeWindow(width, height int) *fakeWindow {
	return &fakeWindow{width: width, height: height, keys: make(map[Key]bool)}
}

func (w *fakeWindow) ShouldClose() bool             { return w.shouldClose }
func (w *fakeWindow) SetShouldClose(c bool)         { w.shouldClose = c }
func (w *fakeWindow) SwapBuffers()                  { w.swaps++ }
func (w *fakeWindow) KeyPressed(key Key) bool       { return w.keys[key] }
func (w *fakeWindow) CursorPos() (float64, float64) { return w.cursorX, w.cursorY }
func (w *fakeWindow) Size() (int, int)              { return w.width, w.height }
func (w *fakeWindow) OnResize(fn func(int, int))    { w.resize = fn }
func (w *fakeWindow) Destroy()                      { w.destroyed++ }

func (w *fakeWindow) SetCursorCaptured(c bool) {
	w.captured = append(w.captured, c)
}

func (w *fakeWindow) PollEvents() {
	w.polls++
	if w.closeAfter > 0 && w.polls >= w.closeAfter {
		w.shouldClose = true
	}
	if w.onPoll != nil {
		w.onPoll(w, w.polls)
	}
}

var _ Window = (*fakeWindow)(nil)
