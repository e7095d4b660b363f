// Package config handles demo configuration loading and management.
package config

// Config holds all demo settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Camera  CameraConfig  `yaml:"camera"`
	Scene   SceneConfig   `yaml:"scene"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// CameraConfig holds projection settings.
type CameraConfig struct {
	FOVDegrees float32 `yaml:"fov_degrees"` // Vertical field of view
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
}

// SceneConfig holds the quad's animation and color settings.
type SceneConfig struct {
	Blue                 float32 `yaml:"blue"`
	SpinDegreesPerSecond float32 `yaml:"spin_degrees_per_second"`
	Distance             float32 `yaml:"distance"` // Quad distance from the camera
}

// ShaderConfig holds shader source paths. Empty paths select the
// embedded sources.
type ShaderConfig struct {
	Vertex   string `yaml:"vertex"`
	Fragment string `yaml:"fragment"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "Hello, quad!",
			Width:  1024,
			Height: 768,
			VSync:  true,
		},
		Camera: CameraConfig{
			FOVDegrees: 45,
			Near:       0.1,
			Far:        100,
		},
		Scene: SceneConfig{
			Blue:                 0.8,
			SpinDegreesPerSecond: 45,
			Distance:             2,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
