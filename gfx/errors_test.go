package gfx

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateLog(t *testing.T) {
	assert.Equal(t, "error at 0:1", truncateLog("error at 0:1\x00\x00\x00garbage"))
	assert.Len(t, truncateLog(strings.Repeat("a", 3000)), InfoLogLimit)
	assert.Equal(t, "", truncateLog(""))
}

func TestTruncateLog_KeepsRunesWhole(t *testing.T) {
	log := strings.Repeat("a", InfoLogLimit-1) + "ü" + strings.Repeat("b", 10)

	got := truncateLog(log)

	assert.True(t, utf8.ValidString(got))
	assert.Len(t, got, InfoLogLimit-1)

	got = truncateLog(strings.Repeat("€", 1000))
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), InfoLogLimit)
	assert.Len(t, got, 1023)
}

func TestLoadError_Message(t *testing.T) {
	err := &LoadError{Resource: ResourceMesh, Path: "cube.obj", Reason: "object \"Cube\" has no normals"}
	assert.Equal(t, `load mesh "cube.obj": object "Cube" has no normals`, err.Error())

	wrapped := &LoadError{Resource: ResourceTexture, Path: "a.png", Err: fs.ErrNotExist}
	assert.True(t, errors.Is(wrapped, fs.ErrNotExist))
}

func TestShaderStage_String(t *testing.T) {
	assert.Equal(t, "vertex", StageVertex.String())
	assert.Equal(t, "fragment", StageFragment.String())
	assert.Equal(t, "link", StageLink.String())
}
