package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// ShaderStage identifies a compile or link step of a shader program.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	}
	return "unknown"
}

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type TextureFilter int

const (
	FilterNearest TextureFilter = iota
	FilterLinear
	FilterLinearMipmapLinear
	FilterNearestMipmapNearest
)

// Device is the raw graphics API. Every call acts on the state of one implicit
// context owned by the rendering thread; a zero handle means "unbind".
//
// gldevice.Device implements it on OpenGL 4.1 core; gfxtest.Device records calls.
type Device interface {
	CreateShader(stage ShaderStage) uint32
	ShaderSource(shader uint32, source string)
	// CompileShader reports the compile status.
	CompileShader(shader uint32) bool
	// ShaderInfoLog returns at most maxLen bytes of the compiler log.
	ShaderInfoLog(shader uint32, maxLen int) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	// LinkProgram reports the link status.
	LinkProgram(program uint32) bool
	ProgramInfoLog(program uint32, maxLen int) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	// GetUniformLocation returns -1 for names that are not active uniforms.
	GetUniformLocation(program uint32, name string) int32
	// Uniform uploads target the program in use. Location -1 is ignored.
	UniformMatrix4(location int32, m mgl32.Mat4)
	UniformVec3(location int32, v mgl32.Vec3)
	UniformInt(location int32, v int32)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)
	GenBuffer() uint32
	BindBuffer(target BufferTarget, buffer uint32)
	// BufferData uploads data once with a static usage hint.
	BufferData(target BufferTarget, data []byte)
	DeleteBuffer(buffer uint32)
	// VertexAttribPointer describes float attribute index as size components at
	// byte offset within records of stride bytes in the bound array buffer.
	VertexAttribPointer(index uint32, size int32, stride int32, offset int)
	EnableVertexAttribArray(index uint32)
	// DrawElements draws count uint32 indices as a triangle list.
	DrawElements(count int32)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(texture uint32)
	TexFilter(min, mag TextureFilter)
	// TexImage2D uploads tightly packed 8-bit RGBA rows, bottom row first.
	TexImage2D(width, height int32, rgba []byte)
	GenerateMipmap()
	DeleteTexture(texture uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	EnableDepthTest(enabled bool)
	Clear()
}
