package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every REVIEWD_ variable the loader reads so ambient
// environment cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"REVIEWD_PROVIDER", "REVIEWD_MODEL", "REVIEWD_TIMEOUT_SECONDS",
		"REVIEWD_CONFIDENCE_THRESHOLD", "REVIEWD_SIZE_THRESHOLD",
		"REVIEWD_REDACT_SECRETS", "REVIEWD_LISTEN_ADDR", "REVIEWD_FORMAT",
	} {
		t.Setenv(v, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, 0.7, cfg.ConfidenceThreshold)
	assert.Equal(t, 500, cfg.SizeThreshold)
	assert.True(t, cfg.RedactSecrets)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "json", cfg.Format)
}

func TestTimeout(t *testing.T) {
	cfg := Config{TimeoutSeconds: 45}
	assert.Equal(t, 45*time.Second, cfg.Timeout())
}

func TestReviewConfig(t *testing.T) {
	cfg := Default()
	rc := cfg.ReviewConfig()

	assert.Equal(t, 500, rc.SizeThreshold)
	assert.Equal(t, 0.7, rc.ConfidenceThreshold)
	assert.Equal(t, 30*time.Second, rc.Timeout)
	assert.True(t, rc.RedactSecrets)
}

func TestLoadPath_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadPath(filepath.Join(t.TempDir(), "absent.toml"), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadPath_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
provider = "anthropic"
model = "claude-sonnet-4-20250514"
timeout_seconds = 60
confidence_threshold = 0.8
size_threshold = 300
redact_secrets = false
listen_addr = ":9090"
format = "markdown"
`)

	cfg, err := LoadPath(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Model)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, 0.8, cfg.ConfidenceThreshold)
	assert.Equal(t, 300, cfg.SizeThreshold)
	assert.False(t, cfg.RedactSecrets)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "markdown", cfg.Format)
}

func TestLoadPath_PartialFileKeepsOtherDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `provider = "local"`)

	cfg, err := LoadPath(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Provider)
	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.True(t, cfg.RedactSecrets)
}

func TestLoadPath_ExplicitFalseInFileSurvives(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `redact_secrets = false`)

	cfg, err := LoadPath(path, nil)
	require.NoError(t, err)
	assert.False(t, cfg.RedactSecrets, "explicit false must not be mistaken for an absent key")
}

func TestLoadPath_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `provider = [this is not toml`)

	_, err := LoadPath(path, nil)
	assert.Error(t, err)
}

func TestLoadPath_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `provider = "anthropic"`)

	t.Setenv("REVIEWD_PROVIDER", "gemini")
	t.Setenv("REVIEWD_TIMEOUT_SECONDS", "90")
	t.Setenv("REVIEWD_CONFIDENCE_THRESHOLD", "0.9")
	t.Setenv("REVIEWD_REDACT_SECRETS", "false")

	cfg, err := LoadPath(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, 90, cfg.TimeoutSeconds)
	assert.Equal(t, 0.9, cfg.ConfidenceThreshold)
	assert.False(t, cfg.RedactSecrets)
}

func TestLoadPath_OverridesWinOverEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("REVIEWD_PROVIDER", "gemini")
	t.Setenv("REVIEWD_MODEL", "gemini-pro")

	cfg, err := LoadPath(filepath.Join(t.TempDir(), "absent.toml"), map[string]string{
		"provider":      "local",
		"model":         "llama3",
		"sizeThreshold": "100",
		"format":        "text",
	})
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Provider)
	assert.Equal(t, "llama3", cfg.Model)
	assert.Equal(t, 100, cfg.SizeThreshold)
	assert.Equal(t, "text", cfg.Format)
}

func TestLoadPath_EmptyOverrideIgnored(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadPath(filepath.Join(t.TempDir(), "absent.toml"), map[string]string{
		"provider": "",
	})
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "reviewd"), dir)
}

func TestConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "reviewd", "config.toml"), path)
}
