// Package renderer draws the demo quad: a spinning square whose model and
// projection transforms are built with pkg/math and uploaded through a
// linked shader program.
package renderer

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/quadgl/internal/engine/gpu"
	"github.com/Faultbox/quadgl/internal/engine/shader"
	"github.com/Faultbox/quadgl/internal/logger"
	"github.com/Faultbox/quadgl/pkg/math"
)

// Uniform names the quad shaders read.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformBlue       = "blue"
)

// ErrClosed is returned by Frame after Close.
var ErrClosed = errors.New("renderer: closed")

// quadVertices holds two triangles (a b d, d b c), 3 floats per vertex.
var quadVertices = []float32{
	-0.5, -0.5, 0.0, // a
	0.5, -0.5, 0.0, // b
	-0.5, 0.5, 0.0, // d
	-0.5, 0.5, 0.0, // d
	0.5, -0.5, 0.0, // b
	0.5, 0.5, 0.0, // c
}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	FOVDegrees float32
	Near       float32
	Far        float32

	Blue                 float32
	SpinDegreesPerSecond float32
	Distance             float32

	ClearColor [4]float32
}

// Renderer owns the quad program and geometry.
type Renderer struct {
	config Config
	ctx    *shader.Context
	log    *zap.Logger

	program *shader.Program
	quadVAO uint32
	quadVBO uint32

	angle      float32
	model      math.Mat4
	view       math.Mat4
	projection math.Mat4
}

// New builds the quad program from the given sources and uploads the
// geometry. On error nothing is left allocated on dev.
func New(dev gpu.Device, cfg Config, vertexSrc, fragmentSrc string) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		ctx:    shader.NewContext(dev),
		log:    logger.Named("renderer"),
	}

	program, err := shader.Build(r.ctx, vertexSrc, fragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	r.quadVBO = dev.CreateVertexBuffer(quadVertices)
	r.quadVAO = dev.CreateVertexArray(r.quadVBO, 3)

	c := cfg.ClearColor
	dev.ClearColor(c[0], c[1], c[2], c[3])
	r.Resize(cfg.Width, cfg.Height)
	r.updateView()
	r.updateModel()

	r.log.Debug("quad created",
		zap.Uint32("program", program.ID()),
		zap.Uint32("vao", r.quadVAO),
		zap.Uint32("vbo", r.quadVBO),
	)
	return r, nil
}

// Close releases the program and geometry. Safe to call more than once.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	dev := r.ctx.Device()
	if r.program != nil {
		r.program.Destroy()
		r.program = nil
	}
	if r.quadVAO != 0 {
		dev.DeleteVertexArray(r.quadVAO)
		r.quadVAO = 0
	}
	if r.quadVBO != 0 {
		dev.DeleteBuffer(r.quadVBO)
		r.quadVBO = 0
	}
}

// Resize sets the viewport and rebuilds the projection for the new
// aspect ratio.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	r.ctx.Device().Viewport(0, 0, int32(width), int32(height))

	// Minimized windows report a zero size; keep the last projection.
	if width <= 0 || height <= 0 {
		return
	}
	aspect := float32(width) / float32(height)
	r.projection.Perspective(math.Radians(r.config.FOVDegrees), aspect, r.config.Near, r.config.Far)

	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Update advances the spin by dt seconds, keeping the angle in [0, 360).
func (r *Renderer) Update(dt float32) {
	r.angle = math32.Mod(r.angle+r.config.SpinDegreesPerSecond*dt, 360)
	switch {
	case math32.IsNaN(r.angle):
		r.angle = 0
	case r.angle < 0:
		r.angle += 360
	}
	r.updateModel()
}

// updateView aims the camera from the origin down -Z at the quad center.
func (r *Renderer) updateView() {
	eye := math.Vec3{}
	forward := math.Vec3{Z: -1}
	target := eye.Add(forward.Scale(r.config.Distance))
	if r.config.Distance <= 0 {
		target = eye.Add(forward)
	}
	r.view = math.LookAt(eye, target, math.Vec3{Y: 1})
}

// updateModel rotates the quad about Z and pushes it away from the camera.
func (r *Renderer) updateModel() {
	r.model = math.New(1)
	r.model.Rotate(r.angle, math.AxisZ)
	r.model.Translate(math.Vec3{Z: -r.config.Distance})
}

// SetBlue changes the fragment shader's blue channel, clamped to [0, 1].
func (r *Renderer) SetBlue(v float32) {
	r.config.Blue = math32.Max(0, math32.Min(1, v))
}

// Blue returns the current blue channel.
func (r *Renderer) Blue() float32 {
	return r.config.Blue
}

// Frame clears the screen and draws the quad. The caller swaps buffers.
func (r *Renderer) Frame() error {
	if r.program == nil {
		return ErrClosed
	}
	dev := r.ctx.Device()
	dev.Clear()

	if err := r.program.Bind(); err != nil {
		return fmt.Errorf("bind quad program: %w", err)
	}
	uniforms := []struct {
		name  string
		value any
	}{
		{UniformModel, &r.model},
		{UniformView, &r.view},
		{UniformProjection, &r.projection},
		{UniformBlue, r.config.Blue},
	}
	for _, u := range uniforms {
		if err := r.program.SetUniform(u.name, u.value); err != nil {
			return fmt.Errorf("set uniform %s: %w", u.name, err)
		}
	}

	dev.DrawArrays(r.quadVAO, 0, int32(len(quadVertices)/3))
	return nil
}

// Model returns the current model matrix.
func (r *Renderer) Model() math.Mat4 {
	return r.model
}

// View returns the current view matrix.
func (r *Renderer) View() math.Mat4 {
	return r.view
}

// Projection returns the current projection matrix.
func (r *Renderer) Projection() math.Mat4 {
	return r.projection
}
