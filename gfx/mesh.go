package gfx

// Mesh owns the GPU buffers of one drawable surface.
type Mesh struct {
	ctx *Context

	vao uint32
	vbo uint32
	ebo uint32

	indexCount int32
	layout     VertexLayout
}

// NewMesh uploads vertices and indices once and records the attribute layout.
// Indices are not validated against the vertex count.
func NewMesh(ctx *Context, vertices []Vertex, indices []uint32, layout VertexLayout) *Mesh {
	dev := ctx.Device()

	vao := dev.GenVertexArray()
	vbo := dev.GenBuffer()
	ebo := dev.GenBuffer()

	ctx.bindVertexArray(vao)
	dev.BindBuffer(ArrayBuffer, vbo)
	dev.BufferData(ArrayBuffer, layout.Encode(vertices))
	// The element buffer binding is captured by the bound vertex array.
	dev.BindBuffer(ElementArrayBuffer, ebo)
	dev.BufferData(ElementArrayBuffer, encodeIndices(indices))

	stride := layout.Stride()
	for _, attr := range layout.attributes() {
		dev.VertexAttribPointer(attr.index, attr.size, stride, attr.offset)
		dev.EnableVertexAttribArray(attr.index)
	}

	ctx.bindVertexArray(0)
	dev.BindBuffer(ArrayBuffer, 0)

	return &Mesh{
		ctx:        ctx,
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: int32(len(indices)),
		layout:     layout,
	}
}

func (m *Mesh) IndexCount() int32    { return m.indexCount }
func (m *Mesh) Layout() VertexLayout { return m.layout }
func (m *Mesh) VertexArray() uint32  { return m.vao }

// Render binds the vertex array and draws IndexCount indices as triangles.
func (m *Mesh) Render() {
	m.ctx.bindVertexArray(m.vao)
	m.ctx.drawElements(m.indexCount)
}

// Destroy releases the vertex array and both buffers. Calling it again is a no-op.
func (m *Mesh) Destroy() {
	if m.vao == 0 {
		return
	}
	dev := m.ctx.Device()
	dev.DeleteVertexArray(m.vao)
	dev.DeleteBuffer(m.vbo)
	dev.DeleteBuffer(m.ebo)
	m.ctx.releasedVertexArray(m.vao)
	m.vao, m.vbo, m.ebo = 0, 0, 0
	m.indexCount = 0
}
