package glrender

type InputModule struct{}

type Input struct {
	Pressed [keyCount]bool

	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
	MouseCaptured            bool

	WindowWidth, WindowHeight int

	captureApplied bool
	havePosition   bool
}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(PreUpdate),
	)
}

func inputSystem(s *WindowState, input *Input) {
	win := s.Window

	for key := Key(0); key < keyCount; key++ {
		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if win.KeyPressed(key) {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}

	if input.JustPressed[KeyTab] {
		input.MouseCaptured = !input.MouseCaptured
	}

	mx, my := win.CursorPos()
	if input.MouseCaptured && input.havePosition {
		input.MouseDeltaX = mx - input.MouseX
		input.MouseDeltaY = my - input.MouseY
	} else {
		input.MouseDeltaX = 0
		input.MouseDeltaY = 0
	}
	input.MouseX = mx
	input.MouseY = my
	input.havePosition = true

	input.WindowWidth, input.WindowHeight = s.WindowWidth, s.WindowHeight

	if input.MouseCaptured != input.captureApplied {
		win.SetCursorCaptured(input.MouseCaptured)
		input.captureApplied = input.MouseCaptured
	}
}
