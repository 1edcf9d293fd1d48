// Package config handles editor configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/boxedit/internal/logger"
	"github.com/Faultbox/boxedit/pkg/geom"
)

// Config holds all editor settings.
type Config struct {
	Graphics    GraphicsConfig             `yaml:"graphics"`
	Data        DataConfig                 `yaml:"data"`
	Calibration geom.CalibrationParameters `yaml:"calibration"`
	Editor      EditorConfig               `yaml:"editor"`
	Logging     LoggingConfig              `yaml:"logging"`
}

// GraphicsConfig holds display and projection settings.
type GraphicsConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Fullscreen  bool    `yaml:"fullscreen"`
	VSync       bool    `yaml:"vsync"`
	FieldOfView float64 `yaml:"fov"` // vertical, degrees
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
}

// DataConfig holds input and output file paths.
type DataConfig struct {
	InputPath     string `yaml:"input"`
	ExportPath    string `yaml:"export"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// EditorConfig holds edit control settings.
type EditorConfig struct {
	TranslateStep  float64 `yaml:"translate_step"`
	RotateStep     float64 `yaml:"rotate_step"` // degrees
	ScaleStep      float64 `yaml:"scale_step"`
	OrthoTolerance float64 `yaml:"ortho_tolerance"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:       1280,
			Height:      720,
			Fullscreen:  false,
			VSync:       true,
			FieldOfView: 75,
			Near:        0.1,
			Far:         1000,
		},
		Data: DataConfig{
			InputPath:     "data.json",
			ExportPath:    "modified_data.json",
			ScreenshotDir: "screenshots",
		},
		Calibration: geom.DefaultCalibration(),
		Editor: EditorConfig{
			TranslateStep:  0.01,
			RotateStep:     1,
			ScaleStep:      0.05,
			OrthoTolerance: geom.DefaultOrthoTolerance,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FieldOfView <= 0 || c.Graphics.FieldOfView >= 180 {
		return fmt.Errorf("graphics: fov %g must be in (0, 180)", c.Graphics.FieldOfView)
	}
	if c.Graphics.Near <= 0 || c.Graphics.Far <= c.Graphics.Near {
		return fmt.Errorf("graphics: invalid clip range [%g, %g]", c.Graphics.Near, c.Graphics.Far)
	}
	if c.Data.InputPath == "" || c.Data.ExportPath == "" {
		return fmt.Errorf("data: input and export paths are required")
	}
	if c.Editor.TranslateStep <= 0 || c.Editor.RotateStep <= 0 || c.Editor.ScaleStep <= 0 {
		return fmt.Errorf("editor: steps must be positive")
	}
	if c.Editor.OrthoTolerance <= 0 || c.Editor.OrthoTolerance >= 1 {
		return fmt.Errorf("editor: ortho_tolerance %g must be in (0, 1)", c.Editor.OrthoTolerance)
	}
	if _, err := c.Calibration.Bounds(); err != nil {
		return fmt.Errorf("calibration: %w", err)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
