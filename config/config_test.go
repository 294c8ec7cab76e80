package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/glrender/gfx"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glrender.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(90), cfg.Camera.FOVDegrees)
	assert.Equal(t, 1600, cfg.Window.Width)
	assert.Equal(t, gfx.TextureOptions{MinFilter: gfx.FilterNearest, MagFilter: gfx.FilterNearest}, cfg.Renderer.TextureOptions())

	s, ok := cfg.Scene(" 2 ")
	require.True(t, ok)
	assert.Equal(t, SceneModel, s.Kind)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
window:
  width: 800
  height: 600
camera:
  fov_degrees: 70
renderer:
  mag_filter: linear
debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, "GL Examples", cfg.Window.Title, "unset fields keep their defaults")
	assert.Equal(t, float32(70), cfg.Camera.FOVDegrees)
	assert.Equal(t, float32(0.1), cfg.Camera.Near)
	assert.Equal(t, Filter(gfx.FilterLinear), cfg.Renderer.MagFilter)
	assert.Equal(t, Filter(gfx.FilterNearest), cfg.Renderer.MinFilter)
	assert.True(t, cfg.Debug)
	assert.Len(t, cfg.Scenes, 2)
}

func TestLoad_ReplacesScenes(t *testing.T) {
	path := writeConfig(t, `
scenes:
  - key: "a"
    kind: model
    mesh: teapot.obj
    vertex_shader: model_vert.glsl
    fragment_shader: model_frag.glsl
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Scenes, 1)
	assert.Equal(t, "teapot.obj", cfg.Scenes[0].Mesh)

	_, ok := cfg.Scene("1")
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad filter": "renderer:\n  min_filter: bilinear\n",
		"bad planes": "camera:\n  near: 10\n  far: 1\n",
		"bad window": "window:\n  width: 0\n",
		"no mesh":    "scenes:\n  - {key: x, kind: model, vertex_shader: a, fragment_shader: b}\n",
		"dup key":    "scenes:\n  - {key: x, kind: simple, vertex_shader: a, fragment_shader: b}\n  - {key: x, kind: simple, vertex_shader: a, fragment_shader: b}\n",
		"bad kind":   "scenes:\n  - {key: x, kind: volume, vertex_shader: a, fragment_shader: b}\n",
		"not yaml":   "window: [",
	}

	for name, contents := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, contents))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFilter_MarshalRoundTrip(t *testing.T) {
	out, err := yaml.Marshal(RendererConfig{MinFilter: Filter(gfx.FilterLinearMipmapLinear)})
	require.NoError(t, err)
	assert.Contains(t, string(out), "min_filter: linear_mipmap_linear")
	assert.Contains(t, string(out), "mag_filter: nearest")
}

func TestLoad_ExampleFile(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "glrender.example.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, Filter(gfx.FilterLinearMipmapLinear), cfg.Renderer.MinFilter)
	require.Len(t, cfg.Scenes, 2)
	assert.Equal(t, SceneModel, cfg.Scenes[1].Kind)
	assert.Equal(t, [3]float32{0, 0, -3}, cfg.Scenes[1].Position)
}
