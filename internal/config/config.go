package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gitscribe.dev/gitscribe/internal/lint"
)

// Config represents the gitscribe configuration.
type Config struct {
	Provider             string     `json:"provider"`
	Model                string     `json:"model"`
	MaxDiffBytes         int        `json:"maxDiffBytes"`
	RedactSecrets        bool       `json:"redactSecrets"`
	WatchIntervalSeconds int        `json:"watchIntervalSeconds"`
	Lint                 lint.Rules `json:"lint"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:             "openai",
		Model:                "gpt-4.1",
		MaxDiffBytes:         500000,
		RedactSecrets:        true,
		WatchIntervalSeconds: 60,
		Lint:                 lint.DefaultRules(),
	}
}

// ConfigDir returns the platform-appropriate config directory for gitscribe.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitscribe"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "gitscribe"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "gitscribe"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "gitscribe"), nil
	default:
		return filepath.Join(home, ".config", "gitscribe"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file does not exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags; only non-zero values
// should be set.
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.MaxDiffBytes > 0 {
		dst.MaxDiffBytes = src.MaxDiffBytes
	}
	if src.WatchIntervalSeconds > 0 {
		dst.WatchIntervalSeconds = src.WatchIntervalSeconds
	}
	if len(src.Lint.Types) > 0 {
		dst.Lint.Types = src.Lint.Types
	}
	if src.Lint.MaxSubjectLength > 0 {
		dst.Lint.MaxSubjectLength = src.Lint.MaxSubjectLength
	}
	// JSON cannot distinguish an unset bool from false, so a file can only
	// turn redaction on, never silently off; use `config set` for that.
	dst.RedactSecrets = src.RedactSecrets || dst.RedactSecrets
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("GITSCRIBE_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("GITSCRIBE_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("GITSCRIBE_MAX_DIFF_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDiffBytes = n
		}
	}
	if v := os.Getenv("GITSCRIBE_WATCH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WatchIntervalSeconds = n
		}
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
	if v, ok := overrides["maxDiffBytes"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxDiffBytes = n
		}
	}
	if v, ok := overrides["watchInterval"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WatchIntervalSeconds = n
		}
	}
}

// SetField sets a single config field by key name. Returns an error if the
// key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "maxDiffBytes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDiffBytes must be an integer: %w", err)
		}
		cfg.MaxDiffBytes = n
	case "redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redactSecrets must be a boolean: %w", err)
		}
		cfg.RedactSecrets = b
	case "watchInterval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("watchInterval must be an integer: %w", err)
		}
		cfg.WatchIntervalSeconds = n
	case "lint.maxSubjectLength":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("lint.maxSubjectLength must be an integer: %w", err)
		}
		cfg.Lint.MaxSubjectLength = n
	case "lint.types":
		var types []string
		for _, t := range strings.Split(value, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
		if len(types) == 0 {
			return fmt.Errorf("lint.types must be a comma-separated list")
		}
		cfg.Lint.Types = types
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
