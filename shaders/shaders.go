package shaders

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gekko3d/glrender/gfx"
)

const (
	SimpleVertex   = "simple_vert.glsl"
	SimpleFragment = "simple_frag.glsl"
	ModelVertex    = "model_vert.glsl"
	ModelFragment  = "model_frag.glsl"
)

//go:embed *.glsl
var files embed.FS

// Source serves the embedded GLSL sources by file name.
type Source struct{}

func (Source) ReadText(path string) (string, error) {
	data, err := fs.ReadFile(files, path)
	if err != nil {
		return "", &gfx.IOError{Path: path, Err: err}
	}
	return string(data), nil
}

// Overlay reads from Dir on disk first and falls back to the embedded sources,
// so a scene can ship its own shaders without losing the defaults.
type Overlay struct {
	Dir string
}

func (o Overlay) ReadText(path string) (string, error) {
	if o.Dir != "" {
		text, err := gfx.FileSource{Dir: o.Dir}.ReadText(path)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	text, err := Source{}.ReadText(path)
	if err != nil {
		return "", fmt.Errorf("shader %q not found in %q or embedded: %w", path, o.Dir, err)
	}
	return text, nil
}

var (
	_ gfx.SourceReader = Source{}
	_ gfx.SourceReader = Overlay{}
)
