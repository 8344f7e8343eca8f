// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/slidesetup/internal/shortcut"
	"github.com/jmylchreest/slidesetup/internal/theme"
)

// Default configuration values.
const (
	DefaultLoader   = LoaderAuto
	DefaultFormat   = "json"
	DefaultDebounce = Duration(100 * time.Millisecond)
)

// Loader strategies accepted in [themes].loader.
const (
	LoaderAuto      = string(theme.StrategyAuto)
	LoaderRaw       = string(theme.StrategyRaw)
	LoaderDelegated = string(theme.StrategyDelegated)
)

var (
	validLoaders = []string{LoaderAuto, LoaderRaw, LoaderDelegated}
	validFormats = []string{"json", "yaml", "text"}
)

// Config represents the slidesetup configuration.
type Config struct {
	Themes    ThemesConfig    `toml:"themes"`
	Host      HostConfig      `toml:"host"`
	Shortcuts ShortcutsConfig `toml:"shortcuts"`
	Output    OutputConfig    `toml:"output"`
	Watch     WatchConfig     `toml:"watch"`

	// path is the file the config was loaded from, empty for defaults.
	path string
}

// ThemesConfig locates the theme definitions.
type ThemesConfig struct {
	Dir    string `toml:"dir"`    // Empty = bundled definitions
	Dark   string `toml:"dark"`   // Definition file for the dark theme
	Light  string `toml:"light"`  // Definition file for the light theme
	Loader string `toml:"loader"` // auto, raw, delegated
}

// HostConfig describes the presentation host.
type HostConfig struct {
	Version string `toml:"version"` // Selects the result shape; empty = current
}

// ShortcutsConfig holds shortcut list customization.
type ShortcutsConfig struct {
	Exclude []string `toml:"exclude"`
}

// OutputConfig holds CLI output defaults.
type OutputConfig struct {
	Format string `toml:"format"` // json, yaml, text
}

// WatchConfig holds theme watcher settings.
type WatchConfig struct {
	Debounce Duration `toml:"debounce"`
}

// Duration is a time.Duration that can be unmarshaled from human-readable
// strings like "250ms" or "1s", or from integer milliseconds.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '250ms', '1s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Themes: ThemesConfig{
			Dir:    "",
			Dark:   theme.DefaultDarkFile,
			Light:  theme.DefaultLightFile,
			Loader: DefaultLoader,
		},
		Shortcuts: ShortcutsConfig{
			Exclude: []string{shortcut.ToggleDark},
		},
		Output: OutputConfig{
			Format: DefaultFormat,
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "slidesetup", "config.toml")
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(path); err == nil {
		cfg.path = abs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(validLoaders, c.Themes.Loader) {
		return fmt.Errorf("invalid themes.loader %q (use auto, raw, or delegated)", c.Themes.Loader)
	}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output.format %q (use json, yaml, or text)", c.Output.Format)
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce must not be negative")
	}
	return nil
}

// Path returns the absolute path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.path
}

// ThemesDir returns the absolute theme directory, or "" for the bundled
// definitions. A relative dir is taken relative to the config file's own
// directory, never the working directory.
func (c *Config) ThemesDir() (string, error) {
	dir := c.Themes.Dir
	if dir == "" {
		return "", nil
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	if c.path == "" {
		return "", fmt.Errorf("relative themes.dir %q needs a config file to resolve against", dir)
	}
	return filepath.Join(filepath.Dir(c.path), dir), nil
}

// ThemeBase returns the theme.Base the configuration points at.
func (c *Config) ThemeBase() (theme.Base, error) {
	dir, err := c.ThemesDir()
	if err != nil {
		return theme.Base{}, err
	}
	if dir == "" {
		return theme.EmbeddedBase(), nil
	}
	return theme.DirBase(dir)
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
