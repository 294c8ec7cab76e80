package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glrender/gfx"
)

const twoObjects = `# two objects sharing one attribute pool
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 0 1 1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
vn 0 1 0
o Quad
f 1/1/1 2/2/1 3/3/1 4/4/1
o Triangle
f 5/1/2 6/2/2 7/3/2
`

func TestDecodeOBJ_ObjectsAndTriangulation(t *testing.T) {
	meshes, err := DecodeOBJ(strings.NewReader(twoObjects), nil)
	require.NoError(t, err)
	require.Len(t, meshes, 2)

	quad := meshes[0]
	assert.Equal(t, "Quad", quad.Name)
	assert.Len(t, quad.Vertices, 4, "quad corners are shared between its two triangles")
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, quad.Indices)

	tri := meshes[1]
	assert.Equal(t, "Triangle", tri.Name)
	assert.Len(t, tri.Vertices, 3)
	assert.Equal(t, []uint32{0, 1, 2}, tri.Indices)
	assert.Equal(t, gfx.Vertex{
		Position:      mgl32.Vec3{1, 0, 1},
		ColorOrNormal: mgl32.Vec3{0, 1, 0},
		UV:            mgl32.Vec2{1, 0},
	}, tri.Vertices[1])
}

func TestDecodeOBJ_DistinctNormalsAreNotMerged(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
vt 0 0
vn 0 0 1
vn 1 0 0
o Wedge
f 1/1/1 2/1/1 3/1/1
f 1/1/2 3/1/2 4/1/2
`
	meshes, err := DecodeOBJ(strings.NewReader(src), nil)
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	// Positions 1 and 3 appear with two different normals.
	assert.Len(t, meshes[0].Vertices, 6)
	assert.Len(t, meshes[0].Indices, 6)
}

func TestDecodeOBJ_MissingNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
o NoNormals
f 1/1 2/1 3/1
`
	_, err := DecodeOBJ(strings.NewReader(src), nil)

	var lerr *gfx.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, gfx.ResourceMesh, lerr.Resource)
	assert.Contains(t, lerr.Reason, "no normals")
}

func TestDecodeOBJ_MissingUVs(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
o NoUVs
f 1//1 2//1 3//1
`
	_, err := DecodeOBJ(strings.NewReader(src), nil)

	var lerr *gfx.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Reason, "no texture coordinates")
}

const oneTriangle = "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n"

func TestDecodeOBJ_ExporterQuirks(t *testing.T) {
	cases := map[string]struct {
		src  string
		name string
	}{
		"nameless group":         {src: oneTriangle + "g\nf 1/1/1 2/1/1 3/1/1\n", name: "unnamed6"},
		"nameless object":        {src: oneTriangle + "o\r\nf 1/1/1 2/1/1 3/1/1\r\n", name: "unnamed6"},
		"numbered smoothing":     {src: oneTriangle + "o A\ns 2\nf 1/1/1 2/1/1 3/1/1\n", name: "A"},
		"smoothing off and name": {src: oneTriangle + "g Body\ns off\nf 1/1/1 2/1/1 3/1/1\ns 16\n", name: "Body"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			meshes, err := DecodeOBJ(strings.NewReader(tc.src), nil)
			require.NoError(t, err)
			require.Len(t, meshes, 1)
			assert.Equal(t, tc.name, meshes[0].Name)
			assert.Equal(t, []uint32{0, 1, 2}, meshes[0].Indices)
		})
	}
}

func TestNormalizeOBJLine(t *testing.T) {
	assert.Equal(t, "s 1", normalizeOBJLine("s 4\r\n", 3))
	assert.Equal(t, "s 0", normalizeOBJLine("s 0\n", 3))
	assert.Equal(t, "s off", normalizeOBJLine("s off", 3))
	assert.Equal(t, "g unnamed7", normalizeOBJLine("  g  \n", 7))
	assert.Equal(t, "o Cube", normalizeOBJLine("o Cube\n", 7))
	assert.Equal(t, "", normalizeOBJLine("\r\n", 1))
}

func TestDecodeOBJ_ErrorsKeepLineNumbers(t *testing.T) {
	_, err := DecodeOBJ(strings.NewReader("g\n\ns bogus\n"), nil)
	assert.ErrorContains(t, err, "line:3")
}

func TestLoadOBJ_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.obj")
	require.NoError(t, os.WriteFile(path, []byte("mtllib scene.mtl\n"+twoObjects), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.mtl"), []byte("newmtl none\nKd 1 1 1\n"), 0o644))

	meshes, err := LoadOBJ(path)
	require.NoError(t, err)
	assert.Len(t, meshes, 2)
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.obj")

	_, err := LoadOBJ(path)

	var lerr *gfx.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, path, lerr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadOBJ_ErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flat.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\no Flat\nf 1 2 3\n"), 0o644))

	_, err := LoadOBJ(path)

	var lerr *gfx.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, path, lerr.Path)
}
