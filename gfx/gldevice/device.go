// Package gldevice implements gfx.Device on OpenGL 4.1 core.
// Every method must be called on the thread that owns the current GL context.
package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glrender/gfx"
)

type Device struct{}

// New loads the GL function pointers for the context current on this thread.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return &Device{}, nil
}

// Version returns the driver's GL version string.
func (d *Device) Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (d *Device) CreateShader(stage gfx.ShaderStage) uint32 {
	switch stage {
	case gfx.StageFragment:
		return gl.CreateShader(gl.FRAGMENT_SHADER)
	default:
		return gl.CreateShader(gl.VERTEX_SHADER)
	}
}

func (d *Device) ShaderSource(shader uint32, source string) {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
}

func (d *Device) CompileShader(shader uint32) bool {
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ShaderInfoLog(shader uint32, maxLen int) string {
	var logLength int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
	buf := logBuffer(logLength, maxLen)
	if buf == nil {
		return ""
	}
	var written int32
	gl.GetShaderInfoLog(shader, int32(len(buf)), &written, &buf[0])
	return string(buf[:written])
}

func (d *Device) DeleteShader(shader uint32) {
	gl.DeleteShader(shader)
}

func (d *Device) CreateProgram() uint32 {
	return gl.CreateProgram()
}

func (d *Device) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	gl.DetachShader(program, shader)
}

func (d *Device) LinkProgram(program uint32) bool {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status != gl.FALSE
}

func (d *Device) ProgramInfoLog(program uint32, maxLen int) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	buf := logBuffer(logLength, maxLen)
	if buf == nil {
		return ""
	}
	var written int32
	gl.GetProgramInfoLog(program, int32(len(buf)), &written, &buf[0])
	return string(buf[:written])
}

// logBuffer sizes a buffer for an info log, including room for the NUL terminator.
func logBuffer(logLength int32, maxLen int) []byte {
	n := int(logLength)
	if n <= 0 {
		return nil
	}
	if n > maxLen+1 {
		n = maxLen + 1
	}
	return make([]byte, n)
}

func (d *Device) UseProgram(program uint32) {
	gl.UseProgram(program)
}

func (d *Device) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// UniformMatrix4 uploads m as stored by mgl32, which is column-major.
func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) UniformVec3(location int32, v mgl32.Vec3) {
	gl.Uniform3fv(location, 1, &v[0])
}

func (d *Device) UniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) {
	gl.BindVertexArray(vao)
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}

func (d *Device) GenBuffer() uint32 {
	var buf uint32
	gl.GenBuffers(1, &buf)
	return buf
}

func (d *Device) BindBuffer(target gfx.BufferTarget, buffer uint32) {
	gl.BindBuffer(glTarget(target), buffer)
}

func (d *Device) BufferData(target gfx.BufferTarget, data []byte) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, gl.STATIC_DRAW)
		return
	}
	gl.BufferData(glTarget(target), len(data), gl.Ptr(data), gl.STATIC_DRAW)
}

func (d *Device) DeleteBuffer(buffer uint32) {
	gl.DeleteBuffers(1, &buffer)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Device) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil)
}

func (d *Device) GenTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	return tex
}

func (d *Device) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (d *Device) BindTexture(texture uint32) {
	gl.BindTexture(gl.TEXTURE_2D, texture)
}

func (d *Device) TexFilter(min, mag gfx.TextureFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(min))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glMagFilter(mag))
}

func (d *Device) TexImage2D(width, height int32, rgba []byte) {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
}

func (d *Device) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *Device) DeleteTexture(texture uint32) {
	gl.DeleteTextures(1, &texture)
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) EnableDepthTest(enabled bool) {
	if enabled {
		gl.Enable(gl.DEPTH_TEST)
		return
	}
	gl.Disable(gl.DEPTH_TEST)
}

func (d *Device) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func glTarget(target gfx.BufferTarget) uint32 {
	if target == gfx.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glFilter(f gfx.TextureFilter) int32 {
	switch f {
	case gfx.FilterLinear:
		return gl.LINEAR
	case gfx.FilterLinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case gfx.FilterNearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	default:
		return gl.NEAREST
	}
}

// glMagFilter drops the mipmap part; magnification only samples the base level.
func glMagFilter(f gfx.TextureFilter) int32 {
	switch f {
	case gfx.FilterLinear, gfx.FilterLinearMipmapLinear:
		return gl.LINEAR
	default:
		return gl.NEAREST
	}
}

var _ gfx.Device = (*Device)(nil)
