package glrender

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glrender/config"
	"github.com/gekko3d/glrender/core"
)

// CameraModule installs the shared *core.Camera resource sized to the window.
type CameraModule struct {
	Config config.CameraConfig
}

func (m CameraModule) Install(app *App, cmd *Commands) {
	width, height := 0, 0
	if ws, ok := Resource[WindowState](app); ok {
		width, height = ws.WindowWidth, ws.WindowHeight
	}

	cam := core.NewCamera(width, height)
	if m.Config.FOVDegrees > 0 {
		cam.FOVDegrees = m.Config.FOVDegrees
	}
	if m.Config.Near > 0 {
		cam.Near = m.Config.Near
	}
	if m.Config.Far > 0 {
		cam.Far = m.Config.Far
	}
	if m.Config.MoveSpeed > 0 {
		cam.MoveSpeed = m.Config.MoveSpeed
	}
	if m.Config.LookSpeed > 0 {
		cam.LookSpeed = m.Config.LookSpeed
	}
	cam.Transform.Position = mgl32.Vec3(m.Config.Position)

	cmd.AddResources(cam)
}

// FlyingCameraModule moves the camera from keyboard and captured mouse input.
// W/S move along the view direction, A/D strafe, Space/LeftShift rise and sink,
// Tab toggles mouse capture.
type FlyingCameraModule struct{}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	app.UseSystem(
		System(flyingCameraSystem).
			InStage(Update),
	)
}

func flyingCameraSystem(input *Input, cam *core.Camera) {
	if input.WindowWidth > 0 && input.WindowHeight > 0 &&
		(input.WindowWidth != cam.Width || input.WindowHeight != cam.Height) {
		cam.Resize(input.WindowWidth, input.WindowHeight)
	}
	cam.UpdateFromInput(CameraInput(input))
}

// CameraInput maps the tracked keys and mouse motion to camera controls.
func CameraInput(input *Input) core.InputState {
	state := core.InputState{
		Forward: input.Pressed[KeyW] || input.Pressed[KeyUp],
		Back:    input.Pressed[KeyS] || input.Pressed[KeyDown],
		Left:    input.Pressed[KeyA] || input.Pressed[KeyLeft],
		Right:   input.Pressed[KeyD] || input.Pressed[KeyRight],
		Up:      input.Pressed[KeySpace],
		Down:    input.Pressed[KeyLeftShift],
	}
	if input.MouseCaptured {
		state.LookX = float32(input.MouseDeltaX)
		state.LookY = float32(input.MouseDeltaY)
	}
	return state
}
