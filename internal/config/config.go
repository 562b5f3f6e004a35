package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/dshills/reviewd/internal/review"
)

// Config represents the effective reviewd configuration.
type Config struct {
	Provider            string  `toml:"provider"`
	Model               string  `toml:"model"`
	TimeoutSeconds      int     `toml:"timeout_seconds"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
	SizeThreshold       int     `toml:"size_threshold"`
	RedactSecrets       bool    `toml:"redact_secrets"`
	ListenAddr          string  `toml:"listen_addr"`
	Format              string  `toml:"format"`
}

// fileConfig mirrors Config with pointer fields so an absent key can be told
// apart from an explicit zero value.
type fileConfig struct {
	Provider            *string  `toml:"provider"`
	Model               *string  `toml:"model"`
	TimeoutSeconds      *int     `toml:"timeout_seconds"`
	ConfidenceThreshold *float64 `toml:"confidence_threshold"`
	SizeThreshold       *int     `toml:"size_threshold"`
	RedactSecrets       *bool    `toml:"redact_secrets"`
	ListenAddr          *string  `toml:"listen_addr"`
	Format              *string  `toml:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:            "openai",
		Model:               "gpt-4",
		TimeoutSeconds:      30,
		ConfidenceThreshold: 0.7,
		SizeThreshold:       500,
		RedactSecrets:       true,
		ListenAddr:          ":8080",
		Format:              "json",
	}
}

// Timeout returns the LLM call timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ReviewConfig converts the app configuration into the review pipeline's
// explicit constants.
func (c Config) ReviewConfig() review.Config {
	return review.Config{
		SizeThreshold:       c.SizeThreshold,
		ConfidenceThreshold: c.ConfidenceThreshold,
		Timeout:             c.Timeout(),
		RedactSecrets:       c.RedactSecrets,
	}
}

// ConfigDir returns the platform-appropriate config directory for reviewd.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "reviewd"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "reviewd"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "reviewd"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "reviewd"), nil
	default:
		return filepath.Join(home, ".config", "reviewd"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags; only non-empty values
// should be set.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

// LoadPath is Load with an explicit config file path, for tests.
func LoadPath(path string, overrides map[string]string) (Config, error) {
	cfg := Default()
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)
	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	if fc.Provider != nil {
		dst.Provider = *fc.Provider
	}
	if fc.Model != nil {
		dst.Model = *fc.Model
	}
	if fc.TimeoutSeconds != nil {
		dst.TimeoutSeconds = *fc.TimeoutSeconds
	}
	if fc.ConfidenceThreshold != nil {
		dst.ConfidenceThreshold = *fc.ConfidenceThreshold
	}
	if fc.SizeThreshold != nil {
		dst.SizeThreshold = *fc.SizeThreshold
	}
	if fc.RedactSecrets != nil {
		dst.RedactSecrets = *fc.RedactSecrets
	}
	if fc.ListenAddr != nil {
		dst.ListenAddr = *fc.ListenAddr
	}
	if fc.Format != nil {
		dst.Format = *fc.Format
	}
	return nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("REVIEWD_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("REVIEWD_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REVIEWD_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("REVIEWD_CONFIDENCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConfidenceThreshold = f
		}
	}
	if v := os.Getenv("REVIEWD_SIZE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SizeThreshold = n
		}
	}
	if v := os.Getenv("REVIEWD_REDACT_SECRETS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RedactSecrets = b
		}
	}
	if v := os.Getenv("REVIEWD_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("REVIEWD_FORMAT"); v != "" {
		cfg.Format = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["timeoutSeconds"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.TimeoutSeconds = n
		}
	}
	if v, ok := overrides["confidenceThreshold"]; ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.ConfidenceThreshold = f
		}
	}
	if v, ok := overrides["sizeThreshold"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SizeThreshold = n
		}
	}
	if v, ok := overrides["listenAddr"]; ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
}
