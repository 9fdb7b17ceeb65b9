// Package config loads and validates the render window configuration from
// YAML. A raw, pointer-typed layer records which keys were actually present in
// the file; the effective config is defaults overlaid with the raw values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Border names the window border style.
type Border string

const (
	BorderResizable Border = "resizable"
	BorderFixed     Border = "fixed"
	BorderNone      Border = "none"
)

// MultisampleConfig selects an antialiasing level with an optional
// driver-specific quality hint.
type MultisampleConfig struct {
	Samples int    `yaml:"samples"`
	Hint    string `yaml:"hint,omitempty"`
}

// WindowConfig describes the initial window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Fullscreen bool `yaml:"fullscreen"`

	// Left/Top position the window explicitly; omitted axes are centered.
	Left *int `yaml:"left,omitempty"`
	Top  *int `yaml:"top,omitempty"`

	// Monitor selects the target display by adapter index. -1 picks the
	// monitor containing the requested position.
	Monitor int `yaml:"monitor"`

	Border     Border `yaml:"border"`
	ToolWindow bool   `yaml:"tool_window"`

	// OuterDimensions treats width/height as the outer window size including
	// decorations.
	OuterDimensions bool `yaml:"outer_dimensions"`
}

// PresentConfig describes how frames are presented.
type PresentConfig struct {
	ColorDepth    int               `yaml:"color_depth"`
	VSync         bool              `yaml:"vsync"`
	VSyncInterval int               `yaml:"vsync_interval"`
	DepthBuffer   bool              `yaml:"depth_buffer"`
	Multisample   MultisampleConfig `yaml:"multisample,omitempty"`
}

// Config holds the application configuration.
type Config struct {
	Window   WindowConfig  `yaml:"window"`
	Present  PresentConfig `yaml:"present"`
	LogLevel string        `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:   "renderwin",
			Width:   800,
			Height:  600,
			Monitor: -1,
			Border:  BorderResizable,
		},
		Present: PresentConfig{
			ColorDepth:    32,
			VSync:         false,
			VSyncInterval: 1,
			DepthBuffer:   true,
		},
		LogLevel: "info",
	}
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}

	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height <= 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.Window.Monitor < -1 {
		return &ValidationError{Path: "window.monitor", Err: fmt.Errorf("monitor must be an adapter index or -1 for automatic selection")}
	}
	switch c.Window.Border {
	case BorderResizable, BorderFixed, BorderNone:
	default:
		return &ValidationError{Path: "window.border", Err: fmt.Errorf("border must be one of: resizable, fixed, none")}
	}
	if c.Window.Fullscreen && c.Window.OuterDimensions {
		return &ValidationError{Path: "window.outer_dimensions", Err: fmt.Errorf("outer_dimensions has no meaning in fullscreen")}
	}

	switch c.Present.ColorDepth {
	case 16, 24, 32:
	default:
		return &ValidationError{Path: "present.color_depth", Err: fmt.Errorf("color_depth must be one of: 16, 24, 32")}
	}
	if c.Present.VSyncInterval < 0 || c.Present.VSyncInterval > 4 {
		return &ValidationError{Path: "present.vsync_interval", Err: fmt.Errorf("vsync_interval must be between 0 and 4")}
	}
	if c.Present.Multisample.Samples < 0 {
		return &ValidationError{Path: "present.multisample.samples", Err: fmt.Errorf("samples must be >= 0")}
	}
	if c.Present.Multisample.Samples == 1 {
		return &ValidationError{Path: "present.multisample.samples", Err: fmt.Errorf("samples must be 0 (off) or a multisample count >= 2")}
	}

	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}
