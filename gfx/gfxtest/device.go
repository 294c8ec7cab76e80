// Package gfxtest provides a recording gfx.Device for tests that run without a GPU.
package gfxtest

import (
	"fmt"
	"maps"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glrender/gfx"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// MatrixUpload is a UniformMatrix4 call resolved back to the uniform name.
type MatrixUpload struct {
	Program  uint32
	Name     string
	Location int32
	Value    mgl32.Mat4
}

// Vec3Upload is a UniformVec3 call resolved back to the uniform name.
type Vec3Upload struct {
	Program  uint32
	Name     string
	Location int32
	Value    mgl32.Vec3
}

// Buffer is the last data uploaded to a buffer handle.
type Buffer struct {
	Target gfx.BufferTarget
	Data   []byte
}

// Attrib is one VertexAttribPointer description.
type Attrib struct {
	Index  uint32
	Size   int32
	Stride int32
	Offset int
}

// Device records every call and keeps just enough state to answer queries.
//
// Uniforms lists the active uniform names of every linked program; other names
// resolve to -1. CompileFailures and LinkFailure make the matching step fail
// with the given log. DrawInts holds the integer uniforms current at each draw.
type Device struct {
	Uniforms        []string
	CompileFailures map[gfx.ShaderStage]string
	LinkFailure     string

	Calls []Call

	LocationLookups map[string]int
	MatrixUploads   []MatrixUpload
	Vec3Uploads     []Vec3Upload
	IntUploads      map[string]int32
	Draws           []int32
	DrawInts        []map[string]int32
	TextureBinds    []uint32
	Buffers         map[uint32]*Buffer
	Attribs         map[uint32][]Attrib
	TexImages       map[uint32][]byte

	next          uint32
	shaderStage   map[uint32]gfx.ShaderStage
	live          map[uint32]string
	program       uint32
	vao           uint32
	arrayBuf      uint32
	elemBuf       uint32
	texture       uint32
	locationNames map[int32]string
	vaoElements   map[uint32]uint32
}

func NewDevice(uniforms ...string) *Device {
	return &Device{
		Uniforms:        uniforms,
		CompileFailures: make(map[gfx.ShaderStage]string),
		LocationLookups: make(map[string]int),
		IntUploads:      make(map[string]int32),
		Buffers:         make(map[uint32]*Buffer),
		Attribs:         make(map[uint32][]Attrib),
		TexImages:       make(map[uint32][]byte),
		shaderStage:     make(map[uint32]gfx.ShaderStage),
		live:            make(map[uint32]string),
		locationNames:   make(map[int32]string),
		vaoElements:     make(map[uint32]uint32),
	}
}

func (d *Device) record(name string, args ...any) {
	d.Calls = append(d.Calls, Call{Name: name, Args: args})
}

func (d *Device) alloc(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *Device) free(handle uint32) {
	delete(d.live, handle)
}

// Count returns how many times the named call was made.
func (d *Device) Count(name string) int {
	n := 0
	for _, c := range d.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Live returns how many handles of kind ("shader", "program", "buffer",
// "vertexArray", "texture") are allocated and not yet deleted.
func (d *Device) Live(kind string) int {
	n := 0
	for _, k := range d.live {
		if k == kind {
			n++
		}
	}
	return n
}

// LiveHandles returns the number of handles of any kind not yet deleted.
func (d *Device) LiveHandles() int { return len(d.live) }

// UploadsOf returns the matrix uploads made to the named uniform.
func (d *Device) UploadsOf(name string) []MatrixUpload {
	var out []MatrixUpload
	for _, u := range d.MatrixUploads {
		if u.Name == name {
			out = append(out, u)
		}
	}
	return out
}

// ElementBuffer returns the element buffer captured by vao.
func (d *Device) ElementBuffer(vao uint32) uint32 { return d.vaoElements[vao] }

func (d *Device) CreateShader(stage gfx.ShaderStage) uint32 {
	h := d.alloc("shader")
	d.shaderStage[h] = stage
	d.record("CreateShader", stage)
	return h
}

func (d *Device) ShaderSource(shader uint32, source string) {
	d.record("ShaderSource", shader, len(source))
}

func (d *Device) CompileShader(shader uint32) bool {
	d.record("CompileShader", shader)
	_, failed := d.CompileFailures[d.shaderStage[shader]]
	return !failed
}

func (d *Device) ShaderInfoLog(shader uint32, maxLen int) string {
	return clip(d.CompileFailures[d.shaderStage[shader]], maxLen)
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader", shader)
	d.free(shader)
}

func (d *Device) CreateProgram() uint32 {
	h := d.alloc("program")
	d.record("CreateProgram")
	return h
}

func (d *Device) AttachShader(program, shader uint32) {
	d.record("AttachShader", program, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	d.record("DetachShader", program, shader)
}

func (d *Device) LinkProgram(program uint32) bool {
	d.record("LinkProgram", program)
	return d.LinkFailure == ""
}

func (d *Device) ProgramInfoLog(program uint32, maxLen int) string {
	return clip(d.LinkFailure, maxLen)
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram", program)
	d.program = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram", program)
	d.free(program)
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	d.record("GetUniformLocation", program, name)
	d.LocationLookups[name]++
	for i, u := range d.Uniforms {
		if u == name {
			loc := int32(i)
			d.locationNames[loc] = name
			return loc
		}
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	d.record("UniformMatrix4", location)
	if location < 0 {
		return
	}
	d.MatrixUploads = append(d.MatrixUploads, MatrixUpload{
		Program:  d.program,
		Name:     d.locationNames[location],
		Location: location,
		Value:    m,
	})
}

func (d *Device) UniformVec3(location int32, v mgl32.Vec3) {
	d.record("UniformVec3", location)
	if location < 0 {
		return
	}
	d.Vec3Uploads = append(d.Vec3Uploads, Vec3Upload{
		Program:  d.program,
		Name:     d.locationNames[location],
		Location: location,
		Value:    v,
	})
}

func (d *Device) UniformInt(location int32, v int32) {
	d.record("UniformInt", location, v)
	if location < 0 {
		return
	}
	d.IntUploads[d.locationNames[location]] = v
}

func (d *Device) GenVertexArray() uint32 {
	h := d.alloc("vertexArray")
	d.record("GenVertexArray")
	return h
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray", vao)
	d.vao = vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray", vao)
	d.free(vao)
}

func (d *Device) GenBuffer() uint32 {
	h := d.alloc("buffer")
	d.record("GenBuffer")
	return h
}

func (d *Device) BindBuffer(target gfx.BufferTarget, buffer uint32) {
	d.record("BindBuffer", target, buffer)
	switch target {
	case gfx.ArrayBuffer:
		d.arrayBuf = buffer
	case gfx.ElementArrayBuffer:
		d.elemBuf = buffer
		if d.vao != 0 {
			d.vaoElements[d.vao] = buffer
		}
	}
}

func (d *Device) BufferData(target gfx.BufferTarget, data []byte) {
	d.record("BufferData", target, len(data))
	buf := d.arrayBuf
	if target == gfx.ElementArrayBuffer {
		buf = d.elemBuf
	}
	d.Buffers[buf] = &Buffer{Target: target, Data: append([]byte(nil), data...)}
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer", buffer)
	d.free(buffer)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int) {
	d.record("VertexAttribPointer", index, size, stride, offset)
	d.Attribs[d.vao] = append(d.Attribs[d.vao], Attrib{Index: index, Size: size, Stride: stride, Offset: offset})
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray", index)
}

func (d *Device) DrawElements(count int32) {
	d.record("DrawElements", count)
	d.Draws = append(d.Draws, count)
	d.DrawInts = append(d.DrawInts, maps.Clone(d.IntUploads))
}

func (d *Device) GenTexture() uint32 {
	h := d.alloc("texture")
	d.record("GenTexture")
	return h
}

func (d *Device) ActiveTexture(unit uint32) {
	d.record("ActiveTexture", unit)
}

func (d *Device) BindTexture(texture uint32) {
	d.record("BindTexture", texture)
	d.texture = texture
	d.TextureBinds = append(d.TextureBinds, texture)
}

func (d *Device) TexFilter(min, mag gfx.TextureFilter) {
	d.record("TexFilter", min, mag)
}

func (d *Device) TexImage2D(width, height int32, rgba []byte) {
	d.record("TexImage2D", width, height, len(rgba))
	d.TexImages[d.texture] = append([]byte(nil), rgba...)
}

func (d *Device) GenerateMipmap() {
	d.record("GenerateMipmap")
}

func (d *Device) DeleteTexture(texture uint32) {
	d.record("DeleteTexture", texture)
	d.free(texture)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport", x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor", r, g, b, a)
}

func (d *Device) EnableDepthTest(enabled bool) {
	d.record("EnableDepthTest", enabled)
}

func (d *Device) Clear() {
	d.record("Clear")
}

// ResetCalls forgets recorded calls and uploads while keeping handle state.
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.MatrixUploads = nil
	d.Vec3Uploads = nil
	d.Draws = nil
	d.DrawInts = nil
	d.TextureBinds = nil
	d.LocationLookups = make(map[string]int)
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

var _ gfx.Device = (*Device)(nil)
