package config

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"

	"github.com/Faultbox/quadgl/internal/logger"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var err error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !finite(c.Camera.FOVDegrees) || c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		err = multierr.Append(err, fmt.Errorf("camera fov_degrees %v must be in (0, 180)", c.Camera.FOVDegrees))
	}
	if c.Camera.Near <= 0 {
		err = multierr.Append(err, fmt.Errorf("camera near %v must be positive", c.Camera.Near))
	}
	if !finite(c.Camera.Far) || c.Camera.Far <= c.Camera.Near {
		err = multierr.Append(err, fmt.Errorf("camera far %v must be finite and exceed near %v", c.Camera.Far, c.Camera.Near))
	}
	if c.Scene.Blue < 0 || c.Scene.Blue > 1 {
		err = multierr.Append(err, fmt.Errorf("scene blue %v must be in [0, 1]", c.Scene.Blue))
	}
	if !finite(c.Scene.SpinDegreesPerSecond) {
		err = multierr.Append(err, fmt.Errorf("scene spin_degrees_per_second %v must be finite", c.Scene.SpinDegreesPerSecond))
	}
	if !finite(c.Scene.Distance) || c.Scene.Distance < 0 {
		err = multierr.Append(err, fmt.Errorf("scene distance %v must be finite and non-negative", c.Scene.Distance))
	}
	if (c.Shaders.Vertex == "") != (c.Shaders.Fragment == "") {
		err = multierr.Append(err, errors.New("shaders: set both vertex and fragment paths or neither"))
	}
	if _, lerr := logger.ParseLevel(c.Logging.Level); lerr != nil {
		err = multierr.Append(err, lerr)
	}

	return err
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
