package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
	"github.com/Faultbox/quadgl/pkg/math"
)

// State is a program's position in its lifecycle.
type State uint8

// Program lifecycle: Empty -> Linking -> Linked or LinkFailed.
// A Linked program is Bound while it is current; Deleted is final.
const (
	StateEmpty State = iota
	StateLinking
	StateLinked
	StateLinkFailed
	StateBound
	StateDeleted
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLinking:
		return "linking"
	case StateLinked:
		return "linked"
	case StateLinkFailed:
		return "link-failed"
	case StateBound:
		return "bound"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Program is a linked vertex+fragment pair. It owns its device program
// object until Destroy.
type Program struct {
	ctx       *Context
	id        uint32
	state     State
	locations map[string]int32
}

// Link links a vertex and a fragment stage into a program.
//
// Both stages are detached and deleted once the link resolves, whatever
// the outcome, and are marked consumed. On failure the program object is
// deleted as well and a *LinkError carrying the driver log is returned.
func Link(ctx *Context, vertex, fragment *Stage) (*Program, error) {
	if vertex == nil || fragment == nil || vertex.consumed || fragment.consumed {
		return nil, ErrStageConsumed
	}
	if vertex.ctx != ctx || fragment.ctx != ctx {
		return nil, ErrForeignStage
	}
	if vertex.kind != gpu.VertexShader {
		return nil, &StageKindError{Want: gpu.VertexShader, Got: vertex.kind}
	}
	if fragment.kind != gpu.FragmentShader {
		return nil, &StageKindError{Want: gpu.FragmentShader, Got: fragment.kind}
	}

	dev := ctx.dev
	p := &Program{ctx: ctx, state: StateEmpty}

	p.id = dev.CreateProgram()
	p.state = StateLinking
	dev.AttachShader(p.id, vertex.id)
	dev.AttachShader(p.id, fragment.id)
	dev.LinkProgram(p.id)
	linked := dev.ProgramLinked(p.id)

	var log string
	if !linked {
		log = dev.ProgramInfoLog(p.id)
	}

	for _, s := range []*Stage{vertex, fragment} {
		dev.DetachShader(p.id, s.id)
		dev.DeleteShader(s.id)
		s.consumed = true
	}

	if !linked {
		if log == "" {
			log = noDiagnostic
		}
		dev.DeleteProgram(p.id)
		p.state = StateLinkFailed
		ctx.log.Warn("program link failed", zap.String("log", log))
		return nil, &LinkError{Log: log}
	}

	p.state = StateLinked
	p.locations = make(map[string]int32)
	ctx.log.Debug("program linked", zap.Uint32("program", p.id))
	return p, nil
}

// ID returns the device program id. It is meaningless after Destroy.
func (p *Program) ID() uint32 {
	return p.id
}

// State returns the current lifecycle state.
func (p *Program) State() State {
	if p.state == StateLinked && p.ctx.bound == p {
		return StateBound
	}
	return p.state
}

// Bind makes p the current program of its context. Binding an already
// bound program does not reach the device.
func (p *Program) Bind() error {
	if p.state == StateDeleted {
		return ErrProgramDeleted
	}
	if p.ctx.bound == p {
		return nil
	}
	p.ctx.dev.UseProgram(p.id)
	p.ctx.bound = p
	return nil
}

// Destroy releases the device program. Later calls are no-ops; any other
// use of p returns ErrProgramDeleted.
func (p *Program) Destroy() {
	if p.state == StateDeleted {
		return
	}
	if p.ctx.bound == p {
		p.ctx.Unbind()
	}
	p.ctx.dev.DeleteProgram(p.id)
	p.ctx.log.Debug("program destroyed", zap.Uint32("program", p.id))
	p.state = StateDeleted
	p.locations = nil
}

// UniformLocation resolves name, caching the result. Names the program
// does not use resolve to gpu.NoLocation without an error.
func (p *Program) UniformLocation(name string) (int32, error) {
	if p.state == StateDeleted {
		return gpu.NoLocation, ErrProgramDeleted
	}
	if loc, ok := p.locations[name]; ok {
		return loc, nil
	}
	loc := p.ctx.dev.UniformLocation(p.id, name)
	if loc == gpu.NoLocation {
		p.ctx.log.Debug("uniform not active",
			zap.Uint32("program", p.id),
			zap.String("name", name),
		)
	}
	p.locations[name] = loc
	return loc, nil
}

// writable resolves name for an upload. A NoLocation result means the
// write should be skipped.
func (p *Program) writable(name string) (int32, error) {
	if p.state == StateDeleted {
		return gpu.NoLocation, ErrProgramDeleted
	}
	if p.ctx.bound != p {
		return gpu.NoLocation, ErrNotBound
	}
	return p.UniformLocation(name)
}

// SetUniform uploads value to the named uniform. Supported values are
// float32, float64, int, int32, bool, math.Vec3, math.Vec4, math.Mat4 and
// *math.Mat4. The program must be bound.
func (p *Program) SetUniform(name string, value any) error {
	switch v := value.(type) {
	case float32:
		return p.SetFloat(name, v)
	case float64:
		return p.SetFloat(name, float32(v))
	case int:
		return p.SetInt(name, int32(v))
	case int32:
		return p.SetInt(name, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		return p.SetInt(name, i)
	case math.Vec3:
		return p.SetVec3(name, v)
	case math.Vec4:
		return p.SetVec4(name, v)
	case math.Mat4:
		return p.SetMat4(name, &v)
	case *math.Mat4:
		return p.SetMat4(name, v)
	default:
		return &UniformTypeError{Name: name, Value: value}
	}
}

// SetFloat uploads a float uniform.
func (p *Program) SetFloat(name string, v float32) error {
	loc, err := p.writable(name)
	if err != nil || loc == gpu.NoLocation {
		return err
	}
	p.ctx.dev.Uniform1f(loc, v)
	return nil
}

// SetInt uploads an int, bool or sampler uniform.
func (p *Program) SetInt(name string, v int32) error {
	loc, err := p.writable(name)
	if err != nil || loc == gpu.NoLocation {
		return err
	}
	p.ctx.dev.Uniform1i(loc, v)
	return nil
}

// SetVec3 uploads a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) error {
	loc, err := p.writable(name)
	if err != nil || loc == gpu.NoLocation {
		return err
	}
	p.ctx.dev.Uniform3f(loc, v.X, v.Y, v.Z)
	return nil
}

// SetVec4 uploads a vec4 uniform.
func (p *Program) SetVec4(name string, v math.Vec4) error {
	loc, err := p.writable(name)
	if err != nil || loc == gpu.NoLocation {
		return err
	}
	p.ctx.dev.Uniform4f(loc, v.X, v.Y, v.Z, v.W)
	return nil
}

// SetMat4 uploads a mat4 uniform. Mat4 is row-major, so the upload is
// transposed for GLSL.
func (p *Program) SetMat4(name string, m *math.Mat4) error {
	loc, err := p.writable(name)
	if err != nil || loc == gpu.NoLocation {
		return err
	}
	p.ctx.dev.UniformMatrix4fv(loc, true, (*[16]float32)(m))
	return nil
}
