package shaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gekko3d/glrender/gfx"
)

func TestSource_Embedded(t *testing.T) {
	for _, name := range []string{SimpleVertex, SimpleFragment, ModelVertex, ModelFragment} {
		text, err := Source{}.ReadText(name)
		require.NoError(t, err, name)
		assert.Contains(t, text, "#version 410 core", name)
		assert.Contains(t, text, "void main()", name)
	}
}

func TestSource_UniformNames(t *testing.T) {
	vert, err := Source{}.ReadText(ModelVertex)
	require.NoError(t, err)
	for _, u := range []string{"proj", "view", "model"} {
		assert.Contains(t, vert, "uniform mat4 "+u+";")
	}

	frag, err := Source{}.ReadText(ModelFragment)
	require.NoError(t, err)
	assert.Contains(t, frag, "uniform vec3 light;")
	assert.Contains(t, frag, "uniform sampler2D tex;")
}

func TestSource_Missing(t *testing.T) {
	_, err := Source{}.ReadText("nope.glsl")

	var ioErr *gfx.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "nope.glsl", ioErr.Path)
}

func TestOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, SimpleVertex), []byte("custom"), 0o644))

	o := Overlay{Dir: dir}

	text, err := o.ReadText(SimpleVertex)
	require.NoError(t, err)
	assert.Equal(t, "custom", text)

	text, err = o.ReadText(SimpleFragment)
	require.NoError(t, err)
	assert.Contains(t, text, "fragColor")

	_, err = o.ReadText("absent.glsl")
	assert.Error(t, err)
}
