package shader

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
)

// Build compiles vertex and fragment sources and links them into a
// program. Errors are the *CompileError or *LinkError from the failing
// step; no GPU objects are left behind on failure.
func Build(ctx *Context, vertexSrc, fragmentSrc string) (*Program, error) {
	vert, err := Compile(ctx, vertexSrc, gpu.VertexShader)
	if err != nil {
		return nil, err
	}

	frag, err := Compile(ctx, fragmentSrc, gpu.FragmentShader)
	if err != nil {
		vert.Release()
		return nil, err
	}

	return Link(ctx, vert, frag)
}

// LoadSources reads a vertex and fragment shader pair from fsys.
// Source text is passed through unchanged.
func LoadSources(fsys fs.FS, vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	v, err := fs.ReadFile(fsys, vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("load vertex shader %q: %w", vertexPath, err)
	}
	f, err := fs.ReadFile(fsys, fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("load fragment shader %q: %w", fragmentPath, err)
	}
	return string(v), string(f), nil
}

// LoadFiles reads a vertex and fragment shader pair from disk. The paths
// are independent and may live in different directories.
func LoadFiles(vertexPath, fragmentPath string) (vertex, fragment string, err error) {
	v, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", fmt.Errorf("load vertex shader %q: %w", vertexPath, err)
	}
	f, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", fmt.Errorf("load fragment shader %q: %w", fragmentPath, err)
	}
	return string(v), string(f), nil
}
