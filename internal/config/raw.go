package config

// RawConfig mirrors Config with pointer fields so an absent key can be told
// apart from a zero value when overlaying onto the defaults.
type RawConfig struct {
	Window   *RawWindowConfig  `yaml:"window,omitempty"`
	Present  *RawPresentConfig `yaml:"present,omitempty"`
	LogLevel *string           `yaml:"log_level,omitempty"`
}

type RawWindowConfig struct {
	Title           *string `yaml:"title,omitempty"`
	Width           *int    `yaml:"width,omitempty"`
	Height          *int    `yaml:"height,omitempty"`
	Fullscreen      *bool   `yaml:"fullscreen,omitempty"`
	Left            *int    `yaml:"left,omitempty"`
	Top             *int    `yaml:"top,omitempty"`
	Monitor         *int    `yaml:"monitor,omitempty"`
	Border          *Border `yaml:"border,omitempty"`
	ToolWindow      *bool   `yaml:"tool_window,omitempty"`
	OuterDimensions *bool   `yaml:"outer_dimensions,omitempty"`
}

type RawPresentConfig struct {
	ColorDepth    *int                  `yaml:"color_depth,omitempty"`
	VSync         *bool                 `yaml:"vsync,omitempty"`
	VSyncInterval *int                  `yaml:"vsync_interval,omitempty"`
	DepthBuffer   *bool                 `yaml:"depth_buffer,omitempty"`
	Multisample   *RawMultisampleConfig `yaml:"multisample,omitempty"`
}

type RawMultisampleConfig struct {
	Samples *int    `yaml:"samples,omitempty"`
	Hint    *string `yaml:"hint,omitempty"`
}
