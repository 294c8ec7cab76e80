// Package loader turns Wavefront OBJ files into per-object vertex and index arrays.
package loader

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/g3n/engine/loader/obj"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gekko3d/glrender/gfx"
)

// SubMesh is one named object of an OBJ file, triangulated and single-indexed.
type SubMesh struct {
	Name     string
	Vertices []gfx.Vertex
	Indices  []uint32
}

// LoadOBJ parses the OBJ file at path. A material library with the same base
// name is read when it exists; materials are otherwise not needed.
func LoadOBJ(path string) ([]SubMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &gfx.LoadError{Resource: gfx.ResourceMesh, Path: path, Reason: "cannot open mesh", Err: err}
	}
	defer f.Close()

	var mtl io.Reader = strings.NewReader("")
	mtlPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".mtl"
	if m, err := os.Open(mtlPath); err == nil {
		defer m.Close()
		mtl = m
	}

	meshes, err := DecodeOBJ(f, mtl)
	if err != nil {
		var lerr *gfx.LoadError
		if errors.As(err, &lerr) && lerr.Path == "" {
			lerr.Path = path
		}
		return nil, err
	}
	return meshes, nil
}

// DecodeOBJ parses OBJ text from objr and an optional material library from mtlr.
// Faces are fan-triangulated and corners sharing the same position, UV and normal
// collapse into one index. Objects without faces are skipped.
func DecodeOBJ(objr, mtlr io.Reader) ([]SubMesh, error) {
	if mtlr == nil {
		mtlr = strings.NewReader("")
	}
	src, err := normalizeOBJ(objr)
	if err != nil {
		return nil, &gfx.LoadError{Resource: gfx.ResourceMesh, Reason: "cannot read OBJ", Err: err}
	}
	dec, err := obj.DecodeReader(src, mtlr)
	if err != nil {
		return nil, &gfx.LoadError{Resource: gfx.ResourceMesh, Reason: "cannot parse OBJ", Err: err}
	}

	attrs := attributes{
		positions: dec.Vertices,
		normals:   dec.Normals,
		uvs:       dec.Uvs,
	}

	meshes := make([]SubMesh, 0, len(dec.Objects))
	for i := range dec.Objects {
		o := &dec.Objects[i]
		if len(o.Faces) == 0 {
			continue
		}
		sm, err := buildSubMesh(o, attrs)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, sm)
	}
	return meshes, nil
}

// normalizeOBJ rewrites the lines the g3n decoder rejects but exporters emit.
// Numbered smoothing groups become "s 1" and a nameless "g" or "o" gets the
// same unnamed<line> name the decoder gives faces outside any object. Line
// numbers are preserved so decoder errors still point at the source.
func normalizeOBJ(r io.Reader) (io.Reader, error) {
	var out bytes.Buffer
	in := bufio.NewReader(r)
	for line := 1; ; line++ {
		text, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		if text != "" {
			out.WriteString(normalizeOBJLine(text, line))
			out.WriteByte('\n')
		}
		if err == io.EOF {
			return &out, nil
		}
	}
}

func normalizeOBJLine(text string, line int) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	switch fields[0] {
	case "g", "o":
		if len(fields) == 1 {
			return fmt.Sprintf("%s unnamed%d", fields[0], line)
		}
	case "s":
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 1 {
				return "s 1"
			}
		}
	}
	return strings.TrimRight(text, "\r\n")
}

type attributes struct {
	positions []float32
	normals   []float32
	uvs       []float32
}

type corner struct {
	position, uv, normal int
}

func buildSubMesh(o *obj.Object, attrs attributes) (SubMesh, error) {
	if len(attrs.normals) == 0 {
		return SubMesh{}, meshError("object %q has no normals", o.Name)
	}
	if len(attrs.uvs) == 0 {
		return SubMesh{}, meshError("object %q has no texture coordinates", o.Name)
	}

	sm := SubMesh{Name: o.Name}
	seen := make(map[corner]uint32)

	add := func(face *obj.Face, i int) error {
		c := corner{position: face.Vertices[i], uv: -1, normal: -1}
		if i < len(face.Uvs) {
			c.uv = face.Uvs[i]
		}
		if i < len(face.Normals) {
			c.normal = face.Normals[i]
		}
		if idx, ok := seen[c]; ok {
			sm.Indices = append(sm.Indices, idx)
			return nil
		}

		v, err := attrs.vertex(o.Name, c)
		if err != nil {
			return err
		}
		idx := uint32(len(sm.Vertices))
		sm.Vertices = append(sm.Vertices, v)
		seen[c] = idx
		sm.Indices = append(sm.Indices, idx)
		return nil
	}

	for f := range o.Faces {
		face := &o.Faces[f]
		if len(face.Vertices) < 3 {
			return SubMesh{}, meshError("object %q face %d has %d vertices", o.Name, f, len(face.Vertices))
		}
		// Fan around the first corner.
		for k := 1; k < len(face.Vertices)-1; k++ {
			for _, i := range [3]int{0, k, k + 1} {
				if err := add(face, i); err != nil {
					return SubMesh{}, err
				}
			}
		}
	}
	return sm, nil
}

func (a attributes) vertex(object string, c corner) (gfx.Vertex, error) {
	if c.position < 0 || (c.position+1)*3 > len(a.positions) {
		return gfx.Vertex{}, meshError("object %q references position %d of %d", object, c.position, len(a.positions)/3)
	}
	if c.normal < 0 || (c.normal+1)*3 > len(a.normals) {
		return gfx.Vertex{}, meshError("object %q has a face corner without a valid normal", object)
	}
	if c.uv < 0 || (c.uv+1)*2 > len(a.uvs) {
		return gfx.Vertex{}, meshError("object %q has a face corner without valid texture coordinates", object)
	}

	p, n, t := c.position*3, c.normal*3, c.uv*2
	return gfx.Vertex{
		Position:      mgl32.Vec3{a.positions[p], a.positions[p+1], a.positions[p+2]},
		ColorOrNormal: mgl32.Vec3{a.normals[n], a.normals[n+1], a.normals[n+2]},
		UV:            mgl32.Vec2{a.uvs[t], a.uvs[t+1]},
	}, nil
}

func meshError(format string, args ...any) error {
	return &gfx.LoadError{Resource: gfx.ResourceMesh, Reason: fmt.Sprintf(format, args...)}
}
