package model

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glrender/core"
	"github.com/gekko3d/glrender/gfx"
	"github.com/gekko3d/glrender/gfx/gfxtest"
)

const oneTriangle = `v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
o Tri
f 1/1/1 2/2/1 3/3/1
`

const twoObjects = oneTriangle + `v 0 0 -1
v 1 0 -1
v 1 1 -1
v 0 1 -1
o Quad
f 4/1/1 5/2/1 6/3/1 7/1/1
`

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func writePNG(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 200, A: 255})
	path := filepath.Join(dir, "tex.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func newProgram(t *testing.T, dev *gfxtest.Device) (*gfx.Context, *gfx.Program) {
	t.Helper()
	ctx := gfx.NewContext(dev, nil)
	prog, err := gfx.BuildProgram(ctx, "vertex", "fragment")
	require.NoError(t, err)
	prog.Use()
	return ctx, prog
}

func TestLoad_OneMeshPerObject(t *testing.T) {
	dev := gfxtest.NewDevice(ModelUniform)
	ctx, prog := newProgram(t, dev)
	path := writeFile(t, t.TempDir(), "two.obj", twoObjects)

	m, err := Load(ctx, path, "", Options{})
	require.NoError(t, err)
	require.Len(t, m.Meshes(), 2)
	assert.Equal(t, int32(3), m.Meshes()[0].IndexCount())
	assert.Equal(t, int32(6), m.Meshes()[1].IndexCount())

	dev.ResetCalls()
	m.Render(prog)

	assert.Equal(t, []int32{3, 6}, dev.Draws)
	assert.Len(t, dev.UploadsOf(ModelUniform), 1, "one model matrix upload for all meshes")
}

func TestRender_UntexturedUploadsIdentity(t *testing.T) {
	dev := gfxtest.NewDevice(ModelUniform)
	ctx, prog := newProgram(t, dev)
	path := writeFile(t, t.TempDir(), "tri.obj", oneTriangle)

	m, err := Load(ctx, path, "", Options{})
	require.NoError(t, err)
	assert.Nil(t, m.Texture())

	dev.ResetCalls()
	m.Render(prog)

	uploads := dev.UploadsOf(ModelUniform)
	require.Len(t, uploads, 1)
	assert.Equal(t, core.NewTransform().Matrix(), uploads[0].Value)
	assert.Equal(t, mgl32.Ident4(), uploads[0].Value)
	assert.Empty(t, dev.TextureBinds)
	assert.Equal(t, []int32{3}, dev.Draws)
}

func TestRender_TexturedBindsOnce(t *testing.T) {
	dev := gfxtest.NewDevice(ModelUniform)
	ctx, prog := newProgram(t, dev)
	dir := t.TempDir()
	meshPath := writeFile(t, dir, "two.obj", twoObjects)
	texPath := writePNG(t, dir)

	m, err := Load(ctx, meshPath, texPath, Options{})
	require.NoError(t, err)
	require.NotNil(t, m.Texture())

	dev.ResetCalls()
	m.Render(prog)

	assert.Equal(t, []uint32{m.Texture().ID()}, dev.TextureBinds)
	assert.Len(t, dev.Draws, 2)
}

func TestRender_UsesTransform(t *testing.T) {
	dev := gfxtest.NewDevice(ModelUniform)
	ctx, prog := newProgram(t, dev)
	path := writeFile(t, t.TempDir(), "tri.obj", oneTriangle)
	m, err := Load(ctx, path, "", Options{})
	require.NoError(t, err)

	m.Transform.Position = mgl32.Vec3{0, 0, -3}
	m.Transform.Scale = mgl32.Vec3{2, 2, 2}
	dev.ResetCalls()
	m.Render(prog)

	assert.Equal(t, m.Transform.Matrix(), dev.UploadsOf(ModelUniform)[0].Value)
}

func TestLoad_Errors(t *testing.T) {
	dev := gfxtest.NewDevice()
	ctx := gfx.NewContext(dev, nil)
	dir := t.TempDir()

	_, err := Load(ctx, filepath.Join(dir, "nope.obj"), "", Options{})
	var lerr *gfx.LoadError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, gfx.ResourceMesh, lerr.Resource)

	meshPath := writeFile(t, dir, "tri.obj", oneTriangle)
	_, err = Load(ctx, meshPath, filepath.Join(dir, "nope.png"), Options{})
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, gfx.ResourceTexture, lerr.Resource)
	assert.Equal(t, 0, dev.LiveHandles(), "no GPU resources survive a failed load")
}

func TestModel_Destroy(t *testing.T) {
	dev := gfxtest.NewDevice()
	ctx := gfx.NewContext(dev, nil)
	dir := t.TempDir()

	m, err := Load(ctx, writeFile(t, dir, "two.obj", twoObjects), writePNG(t, dir), Options{})
	require.NoError(t, err)
	require.NotZero(t, dev.LiveHandles())

	m.Destroy()
	m.Destroy()

	assert.Equal(t, 0, dev.LiveHandles())
	assert.Empty(t, m.Meshes())
}

func TestNew_ProceduralTriangle(t *testing.T) {
	dev := gfxtest.NewDevice(ModelUniform)
	ctx, prog := newProgram(t, dev)
	vertices, err := gfx.VerticesFromFloats([]float32{
		-0.5, -0.5, -1, 1, 0.7, 0,
		0.5, -0.5, -1, 0, 1, 0.7,
		0, 0.5, -1, 0.7, 0, 1,
	}, gfx.LayoutPositionColor)
	require.NoError(t, err)

	m := New([]*gfx.Mesh{gfx.NewMesh(ctx, vertices, []uint32{0, 1, 2}, gfx.LayoutPositionColor)}, nil)
	dev.ResetCalls()
	m.Render(prog)

	assert.Equal(t, []int32{3}, dev.Draws)
	assert.Empty(t, dev.TextureBinds)
}
