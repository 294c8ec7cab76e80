package gfx

// Context is the explicit render context threaded through every draw.
//
// The underlying API has a single active program, a single bound vertex array and
// a single bound texture per unit. Context mirrors those slots so ordering mistakes
// can be reported when debug logging is on. Callers keep the sequence
// use program -> set uniforms -> bind texture -> bind mesh -> draw, with nothing
// else touching the context in between.
type Context struct {
	dev Device
	log Logger

	program     uint32
	vertexArray uint32
	textureUnit uint32
	textures    map[uint32]uint32
}

func NewContext(dev Device, log Logger) *Context {
	if log == nil {
		log = nopLogger{}
	}
	return &Context{
		dev:      dev,
		log:      log,
		textures: make(map[uint32]uint32),
	}
}

func (c *Context) Device() Device { return c.dev }
func (c *Context) Logger() Logger { return c.log }

// ActiveProgram returns the program handle currently in use, 0 if none.
func (c *Context) ActiveProgram() uint32 { return c.program }

// BoundVertexArray returns the vertex array handle currently bound, 0 if none.
func (c *Context) BoundVertexArray() uint32 { return c.vertexArray }

// BoundTexture returns the texture bound on unit, 0 if none.
func (c *Context) BoundTexture(unit uint32) uint32 { return c.textures[unit] }

// Setup applies the fixed per-context state: viewport, clear color and depth testing.
func (c *Context) Setup(width, height int, clear [4]float32, depthTest bool) {
	c.dev.Viewport(0, 0, int32(width), int32(height))
	c.dev.ClearColor(clear[0], clear[1], clear[2], clear[3])
	c.dev.EnableDepthTest(depthTest)
}

// Resize updates the viewport after a framebuffer size change.
func (c *Context) Resize(width, height int) {
	c.dev.Viewport(0, 0, int32(width), int32(height))
}

// Clear clears the color and depth buffers.
func (c *Context) Clear() {
	c.dev.Clear()
}

func (c *Context) useProgram(program uint32) {
	c.dev.UseProgram(program)
	c.program = program
}

func (c *Context) bindVertexArray(vao uint32) {
	c.dev.BindVertexArray(vao)
	c.vertexArray = vao
}

func (c *Context) bindTexture(unit, texture uint32) {
	c.dev.ActiveTexture(unit)
	c.textureUnit = unit
	c.dev.BindTexture(texture)
	c.textures[unit] = texture
}

func (c *Context) checkUniformTarget(program uint32, name string) {
	if !c.log.DebugEnabled() {
		return
	}
	if c.program != program {
		c.log.Warnf("uniform %q set on program %d while program %d is active", name, program, c.program)
	}
}

func (c *Context) drawElements(count int32) {
	if c.log.DebugEnabled() {
		if c.program == 0 {
			c.log.Warnf("draw of %d indices with no active program", count)
		}
		if c.vertexArray == 0 {
			c.log.Warnf("draw of %d indices with no bound vertex array", count)
		}
	}
	c.dev.DrawElements(count)
}

// releasedProgram drops a deleted handle from the tracked slots.
func (c *Context) releasedProgram(program uint32) {
	if c.program == program {
		c.program = 0
	}
}

func (c *Context) releasedVertexArray(vao uint32) {
	if c.vertexArray == vao {
		c.vertexArray = 0
	}
}

func (c *Context) releasedTexture(texture uint32) {
	for unit, bound := range c.textures {
		if bound == texture {
			delete(c.textures, unit)
		}
	}
}
