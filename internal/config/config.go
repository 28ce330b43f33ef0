package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"aastha/internal/camera"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all Aastha configuration.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Camera  CameraConfig  `yaml:"camera"`
	Logging LoggingConfig `yaml:"logging"`
}

// UIConfig controls presentation.
type UIConfig struct {
	Variant  string `yaml:"variant" env:"AASTHA_VARIANT"` // glass, card
	Theme    string `yaml:"theme" env:"AASTHA_THEME"`     // auto, light, dark
	Language string `yaml:"language" env:"AASTHA_LANG"`   // preselected locale, empty shows the picker
}

// CameraConfig selects and tunes the camera driver.
type CameraConfig struct {
	Driver     string        `yaml:"driver" env:"AASTHA_CAMERA"` // browser, pattern, none
	Browser    string        `yaml:"browser" env:"AASTHA_CHROME_BIN"`
	Headless   bool          `yaml:"headless" env:"AASTHA_CAMERA_HEADLESS"`
	Fake       bool          `yaml:"fake_device" env:"AASTHA_CAMERA_FAKE"`
	FacingMode string        `yaml:"facing_mode"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	Timeout    time.Duration `yaml:"timeout" env:"AASTHA_CAMERA_TIMEOUT"`
}

// LoggingConfig configures the file logger. The terminal belongs to the UI.
type LoggingConfig struct {
	Level string `yaml:"level" env:"AASTHA_LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"AASTHA_LOG_FILE"`   // empty disables logging
	// Components silences named loggers when set to false.
	Components map[string]bool `yaml:"components,omitempty"`
}

const (
	VariantGlass = "glass"
	VariantCard  = "card"

	ThemeAuto  = "auto"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var (
	variants   = []string{VariantGlass, VariantCard}
	themes     = []string{ThemeAuto, ThemeLight, ThemeDark}
	levels     = []string{"debug", "info", "warn", "error"}
	facingKeys = []string{string(camera.FacingEnvironment), string(camera.FacingUser)}
)

// DefaultDir returns ~/.aastha, or .aastha when the home directory is unknown.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aastha"
	}
	return filepath.Join(home, ".aastha")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.yaml")
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			Variant: VariantGlass,
			Theme:   ThemeAuto,
		},
		Camera: CameraConfig{
			Driver:     "browser",
			Headless:   true,
			FacingMode: "environment",
			Width:      1280,
			Height:     720,
			Timeout:    15 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(DefaultDir(), "aastha.log"),
		},
	}
}

// Load reads configuration from a YAML file and applies environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize lowercases the enumerated settings so that "Browser" and
// "browser" name the same driver.
func (c *Config) Normalize() {
	for _, v := range []*string{
		&c.UI.Variant,
		&c.UI.Theme,
		&c.Camera.Driver,
		&c.Camera.FacingMode,
		&c.Logging.Level,
	} {
		*v = strings.ToLower(strings.TrimSpace(*v))
	}
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	// AASTHA_DARK_MODE is the older switch, kept for scripts that set it.
	if v := os.Getenv("AASTHA_DARK_MODE"); v != "" && os.Getenv("AASTHA_THEME") == "" {
		if v == "1" || strings.EqualFold(v, "true") {
			c.UI.Theme = ThemeDark
		} else {
			c.UI.Theme = ThemeLight
		}
	}
	return nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	check := func(field, value string, allowed []string) {
		if slices.Contains(allowed, value) {
			return
		}
		errs = append(errs, fmt.Errorf("%s: %q is not one of %s", field, value, strings.Join(allowed, ", ")))
	}

	check("ui.variant", c.UI.Variant, variants)
	check("ui.theme", c.UI.Theme, themes)
	check("camera.driver", c.Camera.Driver, camera.Drivers)
	check("camera.facing_mode", c.Camera.FacingMode, facingKeys)
	check("logging.level", c.Logging.Level, levels)

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera: resolution %dx%d must be positive", c.Camera.Width, c.Camera.Height))
	}
	if c.Camera.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("camera.timeout: must be positive, got %s", c.Camera.Timeout))
	}
	return errors.Join(errs...)
}

// DarkMode resolves the theme setting. Auto defers to the caller's detection.
func (c *Config) DarkMode(detected bool) bool {
	switch strings.ToLower(c.UI.Theme) {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return detected
	}
}

// ComponentEnabled reports whether logs from the named component are kept.
// Components not listed are enabled.
func (c *LoggingConfig) ComponentEnabled(name string) bool {
	if c.Components == nil {
		return true
	}
	enabled, ok := c.Components[name]
	return !ok || enabled
}
