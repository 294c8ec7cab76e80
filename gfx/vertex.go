package gfx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the CPU-side vertex record. Its fields are float32 arrays, so the
// struct carries no padding; the bytes sent to the GPU are produced by Encode.
type Vertex struct {
	Position      mgl32.Vec3
	ColorOrNormal mgl32.Vec3
	UV            mgl32.Vec2
}

// VertexLayout selects which attributes a mesh's vertex buffer carries.
// Position (location 0) and color-or-normal (location 1) are always present;
// UV (location 2) is optional.
type VertexLayout struct {
	HasUV bool
}

var (
	// LayoutPositionColor is the untextured layout: vec3 position, vec3 color.
	LayoutPositionColor = VertexLayout{}
	// LayoutPositionNormalUV is the model layout: vec3 position, vec3 normal, vec2 uv.
	LayoutPositionNormalUV = VertexLayout{HasUV: true}
)

const floatSize = 4

// Floats returns the number of float32 fields in one packed record.
func (l VertexLayout) Floats() int {
	if l.HasUV {
		return 8
	}
	return 6
}

// Stride returns the exact byte size of one packed record.
func (l VertexLayout) Stride() int32 {
	return int32(l.Floats() * floatSize)
}

type attribute struct {
	index  uint32
	size   int32
	offset int
}

func (l VertexLayout) attributes() []attribute {
	attrs := []attribute{
		{index: 0, size: 3, offset: 0},
		{index: 1, size: 3, offset: 3 * floatSize},
	}
	if l.HasUV {
		attrs = append(attrs, attribute{index: 2, size: 2, offset: 6 * floatSize})
	}
	return attrs
}

// VerticesFromFloats converts a flat array of interleaved floats into vertices.
// The length must be an exact multiple of the layout's field count.
func VerticesFromFloats(data []float32, layout VertexLayout) ([]Vertex, error) {
	n := layout.Floats()
	if len(data)%n != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of %d", ErrVertexLayout, len(data), n)
	}

	vertices := make([]Vertex, 0, len(data)/n)
	for i := 0; i < len(data); i += n {
		v := Vertex{
			Position:      mgl32.Vec3{data[i], data[i+1], data[i+2]},
			ColorOrNormal: mgl32.Vec3{data[i+3], data[i+4], data[i+5]},
		}
		if layout.HasUV {
			v.UV = mgl32.Vec2{data[i+6], data[i+7]}
		}
		vertices = append(vertices, v)
	}
	return vertices, nil
}

// Encode packs vertices into little-endian bytes following layout.
func (l VertexLayout) Encode(vertices []Vertex) []byte {
	stride := int(l.Stride())
	out := make([]byte, len(vertices)*stride)

	for i, v := range vertices {
		b := out[i*stride:]
		putFloats(b[0:], v.Position[:])
		putFloats(b[3*floatSize:], v.ColorOrNormal[:])
		if l.HasUV {
			putFloats(b[6*floatSize:], v.UV[:])
		}
	}
	return out
}

func putFloats(dst []byte, values []float32) {
	for i, f := range values {
		binary.LittleEndian.PutUint32(dst[i*floatSize:], math.Float32bits(f))
	}
}

func encodeIndices(indices []uint32) []byte {
	out := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}
