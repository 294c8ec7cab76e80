package gfx

import (
	"os"
	"path/filepath"
)

// SourceReader supplies shader source text by path.
type SourceReader interface {
	ReadText(path string) (string, error)
}

// FileSource reads shader sources from the file system, relative to Dir when set.
type FileSource struct {
	Dir string
}

func (s FileSource) ReadText(path string) (string, error) {
	full := path
	if s.Dir != "" && !filepath.IsAbs(path) {
		full = filepath.Join(s.Dir, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", &IOError{Path: full, Err: err}
	}
	return string(data), nil
}
