package gputest

import (
	"fmt"
	"regexp"
	"strings"
)

// iface is the stage interface a compiled shader exposes to the linker.
type iface struct {
	inputs   map[string]string
	outputs  map[string]string
	uniforms map[string]string
}

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	mainFunc     = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	declaration  = regexp.MustCompile(
		`^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:flat|smooth|noperspective|centroid)\s+)*` +
			`(in|out|uniform)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[\s*\d+\s*\])?\s*;`)
)

var knownTypes = map[string]bool{
	"bool": true, "int": true, "uint": true, "float": true,
	"vec2": true, "vec3": true, "vec4": true,
	"ivec2": true, "ivec3": true, "ivec4": true,
	"uvec2": true, "uvec3": true, "uvec4": true,
	"bvec2": true, "bvec3": true, "bvec4": true,
	"mat2": true, "mat3": true, "mat4": true,
	"sampler2D": true, "sampler3D": true, "samplerCube": true,
}

// scan does just enough GLSL checking to tell good sources from broken
// ones and to collect in/out/uniform declarations. Each returned
// diagnostic is one driver-style log line.
func scan(source string) (*iface, []string) {
	src := blockComment.ReplaceAllStringFunc(source, func(c string) string {
		return strings.Repeat("\n", strings.Count(c, "\n"))
	})
	src = lineComment.ReplaceAllString(src, "")

	if strings.TrimSpace(src) == "" {
		return nil, []string{"0:1: error: empty shader source"}
	}

	out := &iface{
		inputs:   make(map[string]string),
		outputs:  make(map[string]string),
		uniforms: make(map[string]string),
	}
	var diags []string
	depth := 0

	for i, line := range strings.Split(src, "\n") {
		n := i + 1
		trimmed := strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(trimmed, "#error"); ok {
			diags = append(diags, fmt.Sprintf("0:%d: error: #error%s", n, rest))
			continue
		}

		for _, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					diags = append(diags, fmt.Sprintf("0:%d: error: syntax error, unexpected '}'", n))
					depth = 0
				}
			}
		}

		m := declaration.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		storage, typ, name := m[1], m[2], m[3]
		if !knownTypes[typ] {
			diags = append(diags, fmt.Sprintf("0:%d: error: unknown type '%s'", n, typ))
			continue
		}

		var vars map[string]string
		switch storage {
		case "in":
			vars = out.inputs
		case "out":
			vars = out.outputs
		default:
			vars = out.uniforms
		}
		if _, dup := vars[name]; dup {
			diags = append(diags, fmt.Sprintf("0:%d: error: redeclaration of '%s'", n, name))
			continue
		}
		vars[name] = typ
	}

	if depth > 0 {
		diags = append(diags, "0:0: error: syntax error, unexpected end of file")
	}
	if !mainFunc.MatchString(src) {
		diags = append(diags, "0:0: error: function 'main' is not defined")
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return out, nil
}

// linkStages checks that every fragment input is written by a vertex
// output of the same type and that uniforms agree across stages.
// It returns the merged uniform types on success.
func linkStages(vertex, fragment *iface) (map[string]string, []string) {
	var diags []string

	for _, name := range sortedKeys(fragment.inputs) {
		want := fragment.inputs[name]
		got, ok := vertex.outputs[name]
		if !ok {
			diags = append(diags, fmt.Sprintf(
				"error: fragment shader input `%s' has no matching output in the previous stage", name))
			continue
		}
		if got != want {
			diags = append(diags, fmt.Sprintf(
				"error: `%s' declared as type `%s' in vertex shader but type `%s' in fragment shader",
				name, got, want))
		}
	}

	uniforms := make(map[string]string, len(vertex.uniforms)+len(fragment.uniforms))
	for name, typ := range vertex.uniforms {
		uniforms[name] = typ
	}
	for _, name := range sortedKeys(fragment.uniforms) {
		typ := fragment.uniforms[name]
		if prev, ok := uniforms[name]; ok && prev != typ {
			diags = append(diags, fmt.Sprintf(
				"error: uniform `%s' declared as type `%s' and type `%s'", name, prev, typ))
			continue
		}
		uniforms[name] = typ
	}

	if len(diags) > 0 {
		return nil, diags
	}
	return uniforms, nil
}
