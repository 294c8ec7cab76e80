package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a model or camera in world space.
type Transform struct {
	Scale    mgl32.Vec3
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// NewTransform returns the identity transform: unit scale, no rotation, origin.
func NewTransform() Transform {
	return Transform{
		Scale:    mgl32.Vec3{1, 1, 1},
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
	}
}

// Matrix returns the object-to-world matrix.
// Scale is applied first, then rotation, then translation.
func (t Transform) Matrix() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Normalize().Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// Inverse returns the world-to-object matrix.
// All scale components must be nonzero.
func (t Transform) Inverse() mgl32.Mat4 {
	// inv(M) = inv(S) * inv(R) * inv(T)
	invScale := mgl32.Scale3D(1.0/t.Scale.X(), 1.0/t.Scale.Y(), 1.0/t.Scale.Z())
	invRotate := t.Rotation.Normalize().Conjugate().Mat4()
	invTranslate := mgl32.Translate3D(-t.Position.X(), -t.Position.Y(), -t.Position.Z())

	return invScale.Mul4(invRotate).Mul4(invTranslate)
}

// DecomposeTransform splits a T*R*S matrix with positive scale back into its parts.
func DecomposeTransform(m mgl32.Mat4) Transform {
	position := m.Col(3).Vec3()

	c0 := m.Col(0).Vec3()
	c1 := m.Col(1).Vec3()
	c2 := m.Col(2).Vec3()
	scale := mgl32.Vec3{c0.Len(), c1.Len(), c2.Len()}

	// A negative determinant means one axis was mirrored; fold it into X.
	if c0.Cross(c1).Dot(c2) < 0 {
		scale[0] = -scale[0]
	}

	rot := mgl32.Ident4()
	rot.SetCol(0, c0.Mul(1/scale[0]).Vec4(0))
	rot.SetCol(1, c1.Mul(1/scale[1]).Vec4(0))
	rot.SetCol(2, c2.Mul(1/scale[2]).Vec4(0))

	return Transform{
		Scale:    scale,
		Position: position,
		Rotation: mgl32.Mat4ToQuat(rot).Normalize(),
	}
}
