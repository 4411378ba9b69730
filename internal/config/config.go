// Package config handles tool configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Output formats.
const (
	FormatWMSH = "wmsh"
	FormatOBJ  = "obj"
	FormatBoth = "both"
)

// Config holds all tool settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls how built meshes are persisted.
type OutputConfig struct {
	Format string `yaml:"format"` // wmsh, obj or both
	// Directory overrides where new assets are created. Empty means next to the settings file.
	Directory string `yaml:"directory"`
}

// ViewerConfig holds preview window settings.
type ViewerConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	VSync      bool `yaml:"vsync"`
	Wireframe  bool `yaml:"wireframe"`
	ShowBounds bool `yaml:"show_bounds"`
}

// WatchConfig holds rebuild-on-save settings.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatWMSH,
		},
		Viewer: ViewerConfig{
			Width:      1024,
			Height:     768,
			VSync:      true,
			Wireframe:  false,
			ShowBounds: true,
		},
		Watch: WatchConfig{
			Debounce: 200 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatWMSH, FormatOBJ, FormatBoth:
	default:
		return fmt.Errorf("unknown output format %q (want wmsh, obj or both)", c.Output.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return nil
}
