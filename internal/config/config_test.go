package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"aastha/internal/camera"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"AASTHA_VARIANT", "AASTHA_THEME", "AASTHA_LANG", "AASTHA_CAMERA",
		"AASTHA_CHROME_BIN", "AASTHA_CAMERA_HEADLESS", "AASTHA_CAMERA_FAKE",
		"AASTHA_CAMERA_TIMEOUT", "AASTHA_LOG_LEVEL", "AASTHA_LOG_FILE", "AASTHA_DARK_MODE",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, VariantGlass, cfg.UI.Variant)
	assert.Equal(t, ThemeAuto, cfg.UI.Theme)
	assert.Equal(t, "browser", cfg.Camera.Driver)
	assert.Equal(t, 1280, cfg.Camera.Width)
	assert.Equal(t, 720, cfg.Camera.Height)
	assert.Equal(t, "environment", cfg.Camera.FacingMode)
	assert.Equal(t, "aastha.log", filepath.Base(cfg.Logging.File))
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestSaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.UI.Variant = VariantCard
	cfg.UI.Language = "pa"
	cfg.Camera.Driver = "pattern"
	cfg.Camera.Timeout = 3 * time.Second
	cfg.Logging.Components = map[string]bool{"camera": false}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.False(t, loaded.Logging.ComponentEnabled("camera"))
	assert.True(t, loaded.Logging.ComponentEnabled("router"))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  variant: card\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, VariantCard, cfg.UI.Variant)
	assert.Equal(t, 1280, cfg.Camera.Width)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [unterminated"), 0644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("AASTHA_VARIANT", "card")
	t.Setenv("AASTHA_THEME", "dark")
	t.Setenv("AASTHA_LANG", "pa-IN")
	t.Setenv("AASTHA_CAMERA", "none")
	t.Setenv("AASTHA_CHROME_BIN", "/opt/chrome")
	t.Setenv("AASTHA_CAMERA_TIMEOUT", "2s")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, VariantCard, cfg.UI.Variant)
	assert.Equal(t, ThemeDark, cfg.UI.Theme)
	assert.Equal(t, "pa-IN", cfg.UI.Language)
	assert.Equal(t, "none", cfg.Camera.Driver)
	assert.Equal(t, "/opt/chrome", cfg.Camera.Browser)
	assert.Equal(t, 2*time.Second, cfg.Camera.Timeout)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera:\n  driver: pattern\n"), 0644))
	t.Setenv("AASTHA_CAMERA", "none")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Camera.Driver)
}

func TestLegacyDarkModeEnv(t *testing.T) {
	tests := []struct {
		value string
		theme string
	}{
		{"1", ThemeDark},
		{"true", ThemeDark},
		{"0", ThemeLight},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("AASTHA_DARK_MODE", tt.value)
			cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
			require.NoError(t, err)
			assert.Equal(t, tt.theme, cfg.UI.Theme)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"variant", func(c *Config) { c.UI.Variant = "neon" }, "ui.variant"},
		{"theme", func(c *Config) { c.UI.Theme = "sepia" }, "ui.theme"},
		{"driver", func(c *Config) { c.Camera.Driver = "usb" }, "camera.driver"},
		{"facing", func(c *Config) { c.Camera.FacingMode = "left" }, "camera.facing_mode"},
		{"level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"resolution", func(c *Config) { c.Camera.Width = 0 }, "resolution"},
		{"timeout", func(c *Config) { c.Camera.Timeout = 0 }, "camera.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateIsCaseSensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Driver = "Browser"
	assert.ErrorContains(t, cfg.Validate(), "camera.driver")

	cfg.Normalize()
	assert.Equal(t, "browser", cfg.Camera.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestLoadNormalizesNames(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "ui:\n  variant: Card\n  theme: DARK\ncamera:\n  driver: \" Pattern \"\n  facing_mode: User\nlogging:\n  level: Debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, VariantCard, cfg.UI.Variant)
	assert.Equal(t, ThemeDark, cfg.UI.Theme)
	assert.Equal(t, camera.DriverPattern, cfg.Camera.Driver)
	assert.Equal(t, "user", cfg.Camera.FacingMode)
	assert.Equal(t, "debug", cfg.Logging.Level)

	_, err = camera.NewDevice(camera.Options{Driver: cfg.Camera.Driver}, nil)
	assert.NoError(t, err)
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UI.Variant = "x"
	cfg.Camera.Driver = "y"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.variant")
	assert.Contains(t, err.Error(), "camera.driver")
}

func TestDarkMode(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.DarkMode(true))
	assert.False(t, cfg.DarkMode(false))

	cfg.UI.Theme = ThemeDark
	assert.True(t, cfg.DarkMode(false))
	cfg.UI.Theme = ThemeLight
	assert.False(t, cfg.DarkMode(true))
}
