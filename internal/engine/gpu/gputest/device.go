// Package gputest provides an in-memory gpu.Device for tests that need
// shader compilation, linking and uniform uploads without a GL context.
//
// The fake compiler understands enough GLSL to reject broken sources
// (missing main, unbalanced braces, #error, unknown types) and to match
// vertex outputs against fragment inputs at link time. Misuse that a real
// driver reports as a GL error (unknown ids, uniform writes with no
// program bound, type mismatches) is collected in Errors.
package gputest

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
)

// UniformWrite is one recorded Uniform* call.
type UniformWrite struct {
	Program   uint32
	Location  int32
	Name      string
	Transpose bool
	// Value is a float32, int32, [3]float32, [4]float32 or [16]float32.
	Value any
}

// Draw is one recorded DrawArrays call.
type Draw struct {
	Program uint32
	Array   uint32
	First   int32
	Count   int32
}

type shaderObject struct {
	kind     gpu.ShaderKind
	source   string
	compiled bool
	log      string
	iface    *iface
	deleted  bool
	attached int
}

type programObject struct {
	attached  []uint32
	linked    bool
	log       string
	locations map[string]int32
	types     map[int32]string
	names     map[int32]string
}

// Device is a fake gpu.Device. The zero value is not usable; call New.
type Device struct {
	nextID   uint32
	shaders  map[uint32]*shaderObject
	programs map[uint32]*programObject
	buffers  map[uint32][]float32
	arrays   map[uint32]uint32
	current  uint32

	// Writes holds every accepted uniform upload in call order.
	Writes []UniformWrite
	// Draws holds every DrawArrays call in order.
	Draws []Draw
	// Errors holds GL-style errors raised by invalid calls.
	Errors []string
	// UseCalls counts UseProgram calls.
	UseCalls int

	Viewport4  [4]int32
	ClearRGBA  [4]float32
	ClearCalls int
}

var _ gpu.Device = (*Device)(nil)

// New returns an empty fake device.
func New() *Device {
	return &Device{
		shaders:  make(map[uint32]*shaderObject),
		programs: make(map[uint32]*programObject),
		buffers:  make(map[uint32][]float32),
		arrays:   make(map[uint32]uint32),
	}
}

func (d *Device) id() uint32 {
	d.nextID++
	return d.nextID
}

func (d *Device) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) shader(id uint32, call string) *shaderObject {
	s, ok := d.shaders[id]
	if !ok || s.deleted {
		d.errorf("%s: GL_INVALID_VALUE: no shader %d", call, id)
		return nil
	}
	return s
}

func (d *Device) program(id uint32, call string) *programObject {
	p, ok := d.programs[id]
	if !ok {
		d.errorf("%s: GL_INVALID_VALUE: no program %d", call, id)
		return nil
	}
	return p
}

func (d *Device) CreateShader(kind gpu.ShaderKind) uint32 {
	id := d.id()
	d.shaders[id] = &shaderObject{kind: kind}
	return id
}

func (d *Device) ShaderSource(shader uint32, source string) {
	if s := d.shader(shader, "ShaderSource"); s != nil {
		s.source = source
	}
}

func (d *Device) CompileShader(shader uint32) {
	s := d.shader(shader, "CompileShader")
	if s == nil {
		return
	}
	in, diags := scan(s.source)
	s.compiled = diags == nil
	s.iface = in
	s.log = strings.Join(diags, "\n")
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	s := d.shader(shader, "ShaderCompiled")
	return s != nil && s.compiled
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	if s := d.shader(shader, "ShaderInfoLog"); s != nil {
		return s.log
	}
	return ""
}

// DeleteShader flags the shader for deletion. Like GL, the object lives
// on until it is detached from every program.
func (d *Device) DeleteShader(shader uint32) {
	s := d.shader(shader, "DeleteShader")
	if s == nil {
		return
	}
	s.deleted = true
	if s.attached == 0 {
		delete(d.shaders, shader)
	}
}

func (d *Device) CreateProgram() uint32 {
	id := d.id()
	d.programs[id] = &programObject{}
	return id
}

func (d *Device) AttachShader(program, shader uint32) {
	p := d.program(program, "AttachShader")
	s := d.shader(shader, "AttachShader")
	if p == nil || s == nil {
		return
	}
	if slices.Contains(p.attached, shader) {
		d.errorf("AttachShader: GL_INVALID_OPERATION: shader %d already attached to %d", shader, program)
		return
	}
	p.attached = append(p.attached, shader)
	s.attached++
}

func (d *Device) DetachShader(program, shader uint32) {
	p := d.program(program, "DetachShader")
	if p == nil {
		return
	}
	i := slices.Index(p.attached, shader)
	if i < 0 {
		d.errorf("DetachShader: GL_INVALID_OPERATION: shader %d not attached to %d", shader, program)
		return
	}
	p.attached = slices.Delete(p.attached, i, i+1)
	d.release(shader)
}

func (d *Device) release(shader uint32) {
	s, ok := d.shaders[shader]
	if !ok {
		return
	}
	s.attached--
	if s.deleted && s.attached == 0 {
		delete(d.shaders, shader)
	}
}

func (d *Device) LinkProgram(program uint32) {
	p := d.program(program, "LinkProgram")
	if p == nil {
		return
	}
	p.linked = false
	p.locations = nil

	var vertex, fragment []*shaderObject
	var diags []string
	for _, id := range p.attached {
		s := d.shaders[id]
		if !s.compiled {
			diags = append(diags, fmt.Sprintf("error: linking with uncompiled/unspecialized shader %d", id))
			continue
		}
		if s.kind == gpu.FragmentShader {
			fragment = append(fragment, s)
		} else {
			vertex = append(vertex, s)
		}
	}
	if len(diags) == 0 && (len(vertex) != 1 || len(fragment) != 1) {
		diags = append(diags, fmt.Sprintf(
			"error: program needs one vertex and one fragment shader, has %d and %d",
			len(vertex), len(fragment)))
	}
	if len(diags) > 0 {
		p.log = strings.Join(diags, "\n")
		return
	}

	uniforms, diags := linkStages(vertex[0].iface, fragment[0].iface)
	if diags != nil {
		p.log = strings.Join(diags, "\n")
		return
	}

	p.linked = true
	p.log = ""
	p.locations = make(map[string]int32, len(uniforms))
	p.types = make(map[int32]string, len(uniforms))
	p.names = make(map[int32]string, len(uniforms))
	for i, name := range sortedKeys(uniforms) {
		loc := int32(i)
		p.locations[name] = loc
		p.types[loc] = uniforms[name]
		p.names[loc] = name
	}
}

func (d *Device) ProgramLinked(program uint32) bool {
	p := d.program(program, "ProgramLinked")
	return p != nil && p.linked
}

func (d *Device) ProgramInfoLog(program uint32) string {
	if p := d.program(program, "ProgramInfoLog"); p != nil {
		return p.log
	}
	return ""
}

func (d *Device) UseProgram(program uint32) {
	d.UseCalls++
	if program == 0 {
		d.current = 0
		return
	}
	p := d.program(program, "UseProgram")
	if p == nil {
		return
	}
	if !p.linked {
		d.errorf("UseProgram: GL_INVALID_OPERATION: program %d is not linked", program)
		return
	}
	d.current = program
}

// DeleteProgram removes the program and any attachments it still holds.
// Deleting the current program also unbinds it.
func (d *Device) DeleteProgram(program uint32) {
	p := d.program(program, "DeleteProgram")
	if p == nil {
		return
	}
	for _, shader := range p.attached {
		d.release(shader)
	}
	delete(d.programs, program)
	if d.current == program {
		d.current = 0
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	p := d.program(program, "UniformLocation")
	if p == nil {
		return gpu.NoLocation
	}
	if !p.linked {
		d.errorf("UniformLocation: GL_INVALID_OPERATION: program %d is not linked", program)
		return gpu.NoLocation
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	return gpu.NoLocation
}

// upload validates a Uniform* call against the current program and
// records it. Location -1 is silently ignored, as in GL.
func (d *Device) upload(call string, location int32, types []string, w UniformWrite) {
	if location == gpu.NoLocation {
		return
	}
	if d.current == 0 {
		d.errorf("%s: GL_INVALID_OPERATION: no current program", call)
		return
	}
	p := d.programs[d.current]
	typ, ok := p.types[location]
	if !ok {
		d.errorf("%s: GL_INVALID_OPERATION: no uniform at location %d in program %d", call, location, d.current)
		return
	}
	if !slices.Contains(types, typ) {
		d.errorf("%s: GL_INVALID_OPERATION: uniform %q is %s", call, p.names[location], typ)
		return
	}
	w.Program = d.current
	w.Location = location
	w.Name = p.names[location]
	d.Writes = append(d.Writes, w)
}

func (d *Device) Uniform1f(location int32, v float32) {
	d.upload("Uniform1f", location, []string{"float"}, UniformWrite{Value: v})
}

func (d *Device) Uniform1i(location int32, v int32) {
	d.upload("Uniform1i", location,
		[]string{"int", "bool", "sampler2D", "sampler3D", "samplerCube"},
		UniformWrite{Value: v})
}

func (d *Device) Uniform3f(location int32, x, y, z float32) {
	d.upload("Uniform3f", location, []string{"vec3"}, UniformWrite{Value: [3]float32{x, y, z}})
}

func (d *Device) Uniform4f(location int32, x, y, z, w float32) {
	d.upload("Uniform4f", location, []string{"vec4"}, UniformWrite{Value: [4]float32{x, y, z, w}})
}

func (d *Device) UniformMatrix4fv(location int32, transpose bool, m *[16]float32) {
	d.upload("UniformMatrix4fv", location, []string{"mat4"},
		UniformWrite{Value: *m, Transpose: transpose})
}

func (d *Device) CreateVertexBuffer(data []float32) uint32 {
	id := d.id()
	d.buffers[id] = slices.Clone(data)
	return id
}

func (d *Device) CreateVertexArray(buffer uint32, components int32) uint32 {
	if _, ok := d.buffers[buffer]; !ok {
		d.errorf("CreateVertexArray: GL_INVALID_VALUE: no buffer %d", buffer)
	}
	if components < 1 || components > 4 {
		d.errorf("CreateVertexArray: GL_INVALID_VALUE: %d components", components)
	}
	id := d.id()
	d.arrays[id] = buffer
	return id
}

func (d *Device) DeleteBuffer(buffer uint32) {
	if _, ok := d.buffers[buffer]; !ok {
		d.errorf("DeleteBuffer: no buffer %d", buffer)
		return
	}
	delete(d.buffers, buffer)
}

func (d *Device) DeleteVertexArray(array uint32) {
	if _, ok := d.arrays[array]; !ok {
		d.errorf("DeleteVertexArray: no vertex array %d", array)
		return
	}
	delete(d.arrays, array)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.Viewport4 = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) Clear() {
	d.ClearCalls++
}

func (d *Device) DrawArrays(array uint32, first, count int32) {
	if _, ok := d.arrays[array]; !ok {
		d.errorf("DrawArrays: GL_INVALID_OPERATION: no vertex array %d", array)
		return
	}
	if d.current == 0 {
		d.errorf("DrawArrays: GL_INVALID_OPERATION: no current program")
		return
	}
	d.Draws = append(d.Draws, Draw{Program: d.current, Array: array, First: first, Count: count})
}

// CurrentProgram returns the program most recently made current.
func (d *Device) CurrentProgram() uint32 {
	return d.current
}

// LiveShaders counts shader objects that have not been released.
func (d *Device) LiveShaders() int {
	return len(d.shaders)
}

// LivePrograms counts program objects that have not been deleted.
func (d *Device) LivePrograms() int {
	return len(d.programs)
}

// LiveBuffers counts vertex buffers that have not been deleted.
func (d *Device) LiveBuffers() int {
	return len(d.buffers)
}

// LiveArrays counts vertex arrays that have not been deleted.
func (d *Device) LiveArrays() int {
	return len(d.arrays)
}

// Attached returns the shaders currently attached to program.
func (d *Device) Attached(program uint32) []uint32 {
	if p, ok := d.programs[program]; ok {
		return slices.Clone(p.attached)
	}
	return nil
}

// WritesTo returns the recorded uploads to the named uniform.
func (d *Device) WritesTo(name string) []UniformWrite {
	var out []UniformWrite
	for _, w := range d.Writes {
		if w.Name == name {
			out = append(out, w)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
