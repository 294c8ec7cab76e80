package gfx

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked vertex+fragment shader program with a uniform location cache.
type Program struct {
	ctx       *Context
	id        uint32
	locations map[string]int32
}

// BuildProgram compiles both stages and links them.
// A failing vertex stage stops before the fragment stage is compiled; every
// intermediate shader object is deleted whether the build succeeds or not.
func BuildProgram(ctx *Context, vertexSource, fragmentSource string) (*Program, error) {
	dev := ctx.Device()

	vs, err := compileStage(dev, StageVertex, vertexSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(vs)

	fs, err := compileStage(dev, StageFragment, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer dev.DeleteShader(fs)

	id := dev.CreateProgram()
	dev.AttachShader(id, vs)
	dev.AttachShader(id, fs)
	if !dev.LinkProgram(id) {
		log := truncateLog(dev.ProgramInfoLog(id, InfoLogLimit))
		dev.DeleteProgram(id)
		return nil, &CompileError{Stage: StageLink, Log: log}
	}
	dev.DetachShader(id, vs)
	dev.DetachShader(id, fs)

	ctx.Logger().Debugf("linked shader program %d", id)
	return &Program{
		ctx:       ctx,
		id:        id,
		locations: make(map[string]int32),
	}, nil
}

// LoadProgram reads both sources through src, then builds the program.
func LoadProgram(ctx *Context, src SourceReader, vertexPath, fragmentPath string) (*Program, error) {
	vert, err := src.ReadText(vertexPath)
	if err != nil {
		return nil, err
	}
	frag, err := src.ReadText(fragmentPath)
	if err != nil {
		return nil, err
	}
	return BuildProgram(ctx, vert, frag)
}

func compileStage(dev Device, stage ShaderStage, source string) (uint32, error) {
	shader := dev.CreateShader(stage)
	dev.ShaderSource(shader, source)
	if !dev.CompileShader(shader) {
		log := truncateLog(dev.ShaderInfoLog(shader, InfoLogLimit))
		dev.DeleteShader(shader)
		return 0, &CompileError{Stage: stage, Log: log}
	}
	return shader, nil
}

func (p *Program) ID() uint32 { return p.id }

// Use makes p the active program for subsequent uniform uploads and draws.
func (p *Program) Use() {
	p.ctx.useProgram(p.id)
}

// location resolves name once and caches the result, including -1 for misses.
func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := p.ctx.Device().GetUniformLocation(p.id, name)
	p.locations[name] = loc
	if loc < 0 {
		p.ctx.Logger().Debugf("program %d has no active uniform %q", p.id, name)
	}
	return loc
}

// SetMatrix uploads a column-major 4x4 matrix. Unknown names are ignored.
func (p *Program) SetMatrix(name string, m mgl32.Mat4) {
	p.ctx.checkUniformTarget(p.id, name)
	p.ctx.Device().UniformMatrix4(p.location(name), m)
}

// SetVec3 uploads a 3-component vector. Unknown names are ignored.
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	p.ctx.checkUniformTarget(p.id, name)
	p.ctx.Device().UniformVec3(p.location(name), v)
}

// SetInt uploads an integer, typically a sampler's texture unit.
func (p *Program) SetInt(name string, v int32) {
	p.ctx.checkUniformTarget(p.id, name)
	p.ctx.Device().UniformInt(p.location(name), v)
}

// Destroy deletes the program. Calling it again is a no-op.
func (p *Program) Destroy() {
	if p.id == 0 {
		return
	}
	p.ctx.Device().DeleteProgram(p.id)
	p.ctx.releasedProgram(p.id)
	p.id = 0
	p.locations = make(map[string]int32)
}
