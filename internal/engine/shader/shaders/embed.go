// Package shaders provides embedded GLSL shader sources.
package shaders

import "embed"

// FS holds every shader source in this directory.
//
//go:embed *.vert *.frag
var FS embed.FS

// QuadVertexShader transforms the demo quad by the model, view and
// projection matrices.
//
//go:embed quad.vert
var QuadVertexShader string

// QuadFragmentShader colors the quad from its position and the blue uniform.
//
//go:embed quad.frag
var QuadFragmentShader string
