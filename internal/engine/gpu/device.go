// Package gpu defines the GPU command capability used by the shader and
// renderer packages, together with an OpenGL implementation.
package gpu

// NoLocation is the uniform location reported for names that do not exist
// or were optimized out. Writes to it are ignored.
const NoLocation int32 = -1

// ShaderKind identifies a programmable pipeline stage.
type ShaderKind uint8

// Shader stages.
const (
	VertexShader ShaderKind = iota
	FragmentShader
)

// String returns the lower-case stage name.
func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// Device is the set of GPU commands the engine issues. Object ids are
// opaque; 0 is never a valid id. A Device is bound to the thread owning
// its context and is not safe for concurrent use.
type Device interface {
	CreateShader(kind ShaderKind) uint32
	ShaderSource(shader uint32, source string)
	CompileShader(shader uint32)
	ShaderCompiled(shader uint32) bool
	ShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	DetachShader(program, shader uint32)
	LinkProgram(program uint32)
	ProgramLinked(program uint32) bool
	ProgramInfoLog(program uint32) string
	// UseProgram makes program current. 0 unbinds.
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform1i(location int32, v int32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	// UniformMatrix4fv uploads 16 floats. Set transpose for row-major data.
	UniformMatrix4fv(location int32, transpose bool, m *[16]float32)

	// CreateVertexBuffer uploads tightly packed float vertices.
	CreateVertexBuffer(data []float32) uint32
	// CreateVertexArray describes buffer as a single attribute at location 0
	// with the given number of float components per vertex.
	CreateVertexArray(buffer uint32, components int32) uint32
	DeleteBuffer(buffer uint32)
	DeleteVertexArray(array uint32)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArrays(array uint32, first, count int32)
}
