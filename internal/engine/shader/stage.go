package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
)

// Stage is a compiled shader object waiting to be linked.
// Link consumes it; an unlinked stage must be released.
type Stage struct {
	ctx      *Context
	id       uint32
	kind     gpu.ShaderKind
	consumed bool
}

// Compile compiles source as a stage of the given kind.
// On failure the shader object is deleted and a *CompileError carrying the
// full driver log is returned.
func Compile(ctx *Context, source string, kind gpu.ShaderKind) (*Stage, error) {
	dev := ctx.dev
	id := dev.CreateShader(kind)
	dev.ShaderSource(id, source)
	dev.CompileShader(id)

	if !dev.ShaderCompiled(id) {
		log := dev.ShaderInfoLog(id)
		if log == "" {
			log = noDiagnostic
		}
		dev.DeleteShader(id)
		ctx.log.Warn("shader compile failed",
			zap.Stringer("kind", kind),
			zap.String("log", log),
		)
		return nil, &CompileError{Kind: kind, Log: log}
	}

	ctx.log.Debug("shader compiled", zap.Stringer("kind", kind), zap.Uint32("shader", id))
	return &Stage{ctx: ctx, id: id, kind: kind}, nil
}

// Kind returns the stage kind.
func (s *Stage) Kind() gpu.ShaderKind {
	return s.kind
}

// ID returns the device shader id.
func (s *Stage) ID() uint32 {
	return s.id
}

// Consumed reports whether the stage was linked or released.
func (s *Stage) Consumed() bool {
	return s.consumed
}

// Release deletes a stage that will not be linked. It is a no-op on a
// consumed stage.
func (s *Stage) Release() {
	if s == nil || s.consumed {
		return
	}
	s.ctx.dev.DeleteShader(s.id)
	s.consumed = true
}
