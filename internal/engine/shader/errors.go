package shader

import (
	"errors"
	"fmt"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
)

// noDiagnostic replaces empty driver logs so failures always carry text.
const noDiagnostic = "no diagnostic available"

var (
	// ErrProgramDeleted is returned by any use of a program after Destroy.
	ErrProgramDeleted = errors.New("shader: program has been destroyed")
	// ErrNotBound is returned when setting a uniform on a program that is
	// not the bound program of its context.
	ErrNotBound = errors.New("shader: program is not bound")
	// ErrStageConsumed is returned when linking a nil, released or
	// already linked stage.
	ErrStageConsumed = errors.New("shader: stage already consumed")
	// ErrForeignStage is returned when linking a stage compiled on a
	// different Context. The stage is left untouched.
	ErrForeignStage = errors.New("shader: stage belongs to another context")
)

// CompileError reports a stage the driver rejected.
type CompileError struct {
	Kind gpu.ShaderKind
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s shader: %s", e.Kind, e.Log)
}

// LinkError reports stages that compiled but could not be linked.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return "link program: " + e.Log
}

// StageKindError reports a stage passed in the wrong link slot.
type StageKindError struct {
	Want, Got gpu.ShaderKind
}

func (e *StageKindError) Error() string {
	return fmt.Sprintf("shader: expected %s stage, got %s", e.Want, e.Got)
}

// UniformTypeError reports a value SetUniform cannot upload.
type UniformTypeError struct {
	Name  string
	Value any
}

func (e *UniformTypeError) Error() string {
	return fmt.Sprintf("shader: uniform %q: unsupported value type %T", e.Name, e.Value)
}
