// Package main is the entry point for the spinning quad demo.
package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/quadgl/internal/config"
	"github.com/Faultbox/quadgl/internal/engine/gpu"
	"github.com/Faultbox/quadgl/internal/engine/renderer"
	"github.com/Faultbox/quadgl/internal/engine/shader"
	"github.com/Faultbox/quadgl/internal/engine/shader/shaders"
	"github.com/Faultbox/quadgl/internal/engine/window"
	"github.com/Faultbox/quadgl/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== QuadGL ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Error("failed to save config", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		logger.Info("config saved", zap.String("dir", config.ConfigDir()))
		return
	}

	if err := run(cfg); err != nil {
		logger.Error("quad demo error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("quad demo closed normally")
}

// blueStep is how far one Up or Down press moves the blue channel.
const blueStep = 0.05

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	dev, err := gpu.NewGL()
	if err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	vertexSrc, fragmentSrc, err := shaderSources(cfg.Shaders)
	if err != nil {
		return err
	}

	width, height := win.Size()
	r, err := renderer.New(dev, renderer.Config{
		Width:                width,
		Height:               height,
		FOVDegrees:           cfg.Camera.FOVDegrees,
		Near:                 cfg.Camera.Near,
		Far:                  cfg.Camera.Far,
		Blue:                 cfg.Scene.Blue,
		SpinDegreesPerSecond: cfg.Scene.SpinDegreesPerSecond,
		Distance:             cfg.Scene.Distance,
		ClearColor:           [4]float32{0.3, 0.3, 0.3, 1.0},
	}, vertexSrc, fragmentSrc)
	if err != nil {
		return err
	}
	defer r.Close()

	last := time.Now()
	for {
		ev := win.PollEvents()
		if ev.Quit {
			return nil
		}
		if ev.Resized {
			r.Resize(ev.Width, ev.Height)
		}
		if ev.BlueSteps != 0 {
			r.SetBlue(r.Blue() + blueStep*float32(ev.BlueSteps))
		}

		now := time.Now()
		r.Update(float32(now.Sub(last).Seconds()))
		last = now

		if err := r.Frame(); err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		win.SwapBuffers()
	}
}

// shaderSources returns the configured shader files, or the embedded quad
// shaders when none are set.
func shaderSources(cfg config.ShaderConfig) (string, string, error) {
	if cfg.Vertex == "" {
		return shaders.QuadVertexShader, shaders.QuadFragmentShader, nil
	}

	logger.Info("loading shaders",
		zap.String("vertex", cfg.Vertex),
		zap.String("fragment", cfg.Fragment),
	)
	return shader.LoadFiles(cfg.Vertex, cfg.Fragment)
}
