package config

import "fmt"

// ValidationError reports an invalid config value, with the file position of
// the offending key when it came from a loaded file.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig overlays the raw values present in the file onto the
// defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if w := raw.Window; w != nil {
		if w.Title != nil {
			cfg.Window.Title = *w.Title
		}
		if w.Width != nil {
			cfg.Window.Width = *w.Width
		}
		if w.Height != nil {
			cfg.Window.Height = *w.Height
		}
		if w.Fullscreen != nil {
			cfg.Window.Fullscreen = *w.Fullscreen
		}
		if w.Left != nil {
			left := *w.Left
			cfg.Window.Left = &left
		}
		if w.Top != nil {
			top := *w.Top
			cfg.Window.Top = &top
		}
		if w.Monitor != nil {
			cfg.Window.Monitor = *w.Monitor
		}
		if w.Border != nil {
			cfg.Window.Border = *w.Border
		}
		if w.ToolWindow != nil {
			cfg.Window.ToolWindow = *w.ToolWindow
		}
		if w.OuterDimensions != nil {
			cfg.Window.OuterDimensions = *w.OuterDimensions
		}
	}

	if p := raw.Present; p != nil {
		if p.ColorDepth != nil {
			cfg.Present.ColorDepth = *p.ColorDepth
		}
		if p.VSync != nil {
			cfg.Present.VSync = *p.VSync
		}
		if p.VSyncInterval != nil {
			cfg.Present.VSyncInterval = *p.VSyncInterval
		}
		if p.DepthBuffer != nil {
			cfg.Present.DepthBuffer = *p.DepthBuffer
		}
		if m := p.Multisample; m != nil {
			if m.Samples != nil {
				cfg.Present.Multisample.Samples = *m.Samples
			}
			if m.Hint != nil {
				cfg.Present.Multisample.Hint = *m.Hint
			}
		}
	}

	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}

	return cfg
}
