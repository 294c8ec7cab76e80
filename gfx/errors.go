package gfx

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// InfoLogLimit bounds the compiler/linker diagnostic kept in a CompileError.
const InfoLogLimit = 1024

// ErrVertexLayout reports flat vertex data that does not fill whole records.
var ErrVertexLayout = errors.New("vertex data does not match layout")

// CompileError is returned when a shader stage fails to compile or the program fails to link.
type CompileError struct {
	Stage ShaderStage
	Log   string
}

func (e *CompileError) Error() string {
	if e.Log == "" {
		return fmt.Sprintf("%s shader failed", e.Stage)
	}
	return fmt.Sprintf("%s shader failed: %s", e.Stage, e.Log)
}

const (
	ResourceMesh    = "mesh"
	ResourceTexture = "texture"
)

// LoadError is returned when a mesh or texture asset cannot be turned into GPU resources.
type LoadError struct {
	Resource string
	Path     string
	Reason   string
	Err      error
}

func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s", e.Resource)
	if e.Path != "" {
		msg += fmt.Sprintf(" %q", e.Path)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LoadError) Unwrap() error { return e.Err }

// IOError is returned when a text source cannot be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("read %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func truncateLog(log string) string {
	// Drivers may hand back the NUL terminator with the text.
	for i := 0; i < len(log); i++ {
		if log[i] == 0 {
			log = log[:i]
			break
		}
	}
	if len(log) > InfoLogLimit {
		n := InfoLogLimit
		for n > 0 && !utf8.RuneStart(log[n]) {
			n--
		}
		log = log[:n]
	}
	return log
}
