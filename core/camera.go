package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

const maxPitchDegrees = 89.0

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	localRight   = mgl32.Vec3{1, 0, 0}
	localForward = mgl32.Vec3{0, 0, -1}
)

// InputState is the per-frame snapshot a camera reads to move itself.
// LookX/LookY are look deltas (mouse pixels or arrow-key steps), positive right and down.
type InputState struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool

	LookX, LookY float32
}

// Camera is a first-person camera: a world transform plus a perspective projection.
// Yaw and Pitch (degrees) are the source of truth for the rotation once look input
// has been applied; set them together with Transform.Rotation when placing a camera.
type Camera struct {
	Transform Transform

	FOVDegrees    float32
	Width, Height int
	Near, Far     float32

	MoveSpeed float32 // world units per frame
	LookSpeed float32 // degrees per look unit

	Yaw, Pitch float32
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Transform:  NewTransform(),
		FOVDegrees: 90,
		Width:      width,
		Height:     height,
		Near:       0.1,
		Far:        500,
		MoveSpeed:  0.05,
		LookSpeed:  0.1,
	}
}

// View returns the inverse of the camera's world matrix.
// A zero scale component makes the transform non-invertible and the result undefined.
func (c *Camera) View() mgl32.Mat4 {
	return c.Transform.Matrix().Inv()
}

// Projection returns a right-handed OpenGL perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOVDegrees), c.Aspect(), c.Near, c.Far)
}

func (c *Camera) Aspect() float32 {
	if c.Height <= 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Resize updates the resolution used for the aspect ratio.
func (c *Camera) Resize(width, height int) {
	c.Width = width
	c.Height = height
}

// Forward is the direction the camera looks along, in world space.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.Transform.Rotation.Normalize().Rotate(localForward)
}

// Right is the camera's local +X axis in world space.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Transform.Rotation.Normalize().Rotate(localRight)
}

// UpdateFromInput applies one frame of look and movement input.
func (c *Camera) UpdateFromInput(in InputState) {
	if in.LookX != 0 || in.LookY != 0 {
		c.Yaw -= in.LookX * c.LookSpeed
		c.Pitch -= in.LookY * c.LookSpeed
		c.Pitch = mgl32.Clamp(c.Pitch, -maxPitchDegrees, maxPitchDegrees)

		// Yaw about world up, then pitch about the yawed local X axis.
		yaw := mgl32.QuatRotate(mgl32.DegToRad(c.Yaw), worldUp)
		pitch := mgl32.QuatRotate(mgl32.DegToRad(c.Pitch), localRight)
		c.Transform.Rotation = yaw.Mul(pitch).Normalize()
	}

	forward := c.Forward()
	right := c.Right()

	move := mgl32.Vec3{0, 0, 0}
	if in.Forward {
		move = move.Add(forward)
	}
	if in.Back {
		move = move.Sub(forward)
	}
	if in.Right {
		move = move.Add(right)
	}
	if in.Left {
		move = move.Sub(right)
	}
	if in.Up {
		move = move.Add(worldUp)
	}
	if in.Down {
		move = move.Sub(worldUp)
	}

	// Normalized so diagonal movement is no faster than a single axis.
	if move.Len() > 1e-6 {
		c.Transform.Position = c.Transform.Position.Add(move.Normalize().Mul(c.MoveSpeed))
	}
}
