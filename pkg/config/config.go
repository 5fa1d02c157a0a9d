// Package config handles loading and saving quire configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/quire/config.yaml
//   - State:   ~/.local/state/quire/ (debug log)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/quire/pkg/render"
)

// ReaderConfig holds reader layout settings.
type ReaderConfig struct {
	BandWidth    int     `yaml:"band_width,omitempty"`    // Columns per side click band
	MaxHeight    int     `yaml:"max_height,omitempty"`    // Tallest the paper may grow, in rows
	CellAspect   float64 `yaml:"cell_aspect,omitempty"`   // Terminal cell height / width
	ShowChevrons *bool   `yaml:"show_chevrons,omitempty"` // Draw ‹ › at the bands
	Fade         *bool   `yaml:"fade,omitempty"`          // Faint text right after a page turn
	HelpStyle    string  `yaml:"help_style,omitempty"`    // glamour style for the help overlay
}

// LoggingConfig controls the debug log.
type LoggingConfig struct {
	File string `yaml:"file,omitempty"`
}

// Config is the top-level configuration for quire.
type Config struct {
	Reader  ReaderConfig  `yaml:"reader,omitempty"`
	Labels  render.Labels `yaml:"labels,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// Defaults for ReaderConfig.
const (
	DefaultBandWidth  = 6
	DefaultMaxHeight  = 50
	DefaultCellAspect = 2.0
	DefaultHelpStyle  = "auto"
)

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	on := true
	fade := true
	return Config{
		Reader: ReaderConfig{
			BandWidth:    DefaultBandWidth,
			MaxHeight:    DefaultMaxHeight,
			CellAspect:   DefaultCellAspect,
			ShowChevrons: &on,
			Fade:         &fade,
			HelpStyle:    DefaultHelpStyle,
		},
		Labels: render.DefaultLabels(),
	}
}

// Validate replaces out-of-range values with defaults.
func (c *Config) Validate() {
	def := DefaultConfig()
	if c.Reader.BandWidth < 2 || c.Reader.BandWidth > 40 {
		c.Reader.BandWidth = def.Reader.BandWidth
	}
	if c.Reader.MaxHeight < 10 {
		c.Reader.MaxHeight = def.Reader.MaxHeight
	}
	if c.Reader.CellAspect < 1 || c.Reader.CellAspect > 4 {
		c.Reader.CellAspect = def.Reader.CellAspect
	}
	if c.Reader.ShowChevrons == nil {
		c.Reader.ShowChevrons = def.Reader.ShowChevrons
	}
	if c.Reader.Fade == nil {
		c.Reader.Fade = def.Reader.Fade
	}
	if strings.TrimSpace(c.Reader.HelpStyle) == "" {
		c.Reader.HelpStyle = def.Reader.HelpStyle
	}
	c.Labels = c.Labels.Merge(def.Labels)
}

// Chevrons reports whether band chevrons are drawn.
func (r ReaderConfig) Chevrons() bool { return r.ShowChevrons == nil || *r.ShowChevrons }

// FadeEnabled reports whether the page-turn fade is drawn.
func (r ReaderConfig) FadeEnabled() bool { return r.Fade == nil || *r.Fade }

// ConfigDir returns the XDG config directory for quire.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "quire")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quire")
}

// StateDir returns the XDG state directory for quire.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "quire")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "quire")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	cfg.Validate()
	cfg.Logging.File = expandHome(cfg.Logging.File)

	return cfg, nil
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// DebugLogPath is where the reader writes debug output when no file is
// configured.
func (c Config) DebugLogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	dir := StateDir()
	if dir == "" {
		return filepath.Join(os.TempDir(), "quire.log")
	}
	return filepath.Join(dir, "quire.log")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
