// Package shader compiles GLSL stages and manages linked programs.
//
// All GPU access goes through a Context, which owns the gpu.Device and
// tracks which program is bound. A Context and everything created from it
// belong to the goroutine holding the GPU context; nothing here locks.
//
// The package is always checked: using a destroyed program returns
// ErrProgramDeleted rather than reaching the driver.
package shader

import (
	"go.uber.org/zap"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
	"github.com/Faultbox/quadgl/internal/logger"
)

// Context is the explicit replacement for the driver's global
// "current program" slot.
type Context struct {
	dev   gpu.Device
	bound *Program
	log   *zap.Logger
}

// NewContext returns a context issuing commands to dev.
func NewContext(dev gpu.Device) *Context {
	return &Context{
		dev: dev,
		log: logger.Named("shader"),
	}
}

// Device returns the underlying device.
func (c *Context) Device() gpu.Device {
	return c.dev
}

// Bound returns the currently bound program, or nil.
func (c *Context) Bound() *Program {
	return c.bound
}

// Unbind clears the current program.
func (c *Context) Unbind() {
	if c.bound == nil {
		return
	}
	c.dev.UseProgram(0)
	c.bound = nil
}
