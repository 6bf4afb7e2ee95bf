package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const DefaultConfigFileName = "config.toml"

// Config holds the user-tunable settings loaded from config.toml.
type Config struct {
	DBPath string `toml:"db_path"`
	Theme  string `toml:"theme"`

	// Default clock hour applied when a date expression names a day
	// but no time ("tomorrow", "friday", "06-12").
	DueHour   int `toml:"due_hour"`
	DeferHour int `toml:"defer_hour"`

	LogLevel string `toml:"log_level"`
}

// DefaultDataDir returns the default data directory path
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".muster"
	}
	return filepath.Join(home, ".local", "share", "muster")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(DefaultDataDir(), DefaultConfigFileName)
	}
	return filepath.Join(dir, "muster", DefaultConfigFileName)
}

// LoadOrCreate reads the config at path, writing the defaults there
// first when no file exists yet.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks fills in zero values left by a partial config file.
func (c *Config) applyFallbacks() {
	def := defaultConfig()
	if c.DBPath == "" {
		c.DBPath = def.DBPath
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.DueHour <= 0 || c.DueHour > 23 {
		c.DueHour = def.DueHour
	}
	if c.DeferHour <= 0 || c.DeferHour > 23 {
		c.DeferHour = def.DeferHour
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:    filepath.Join(DefaultDataDir(), "muster.db"),
		Theme:     "default",
		DueHour:   17,
		DeferHour: 8,
		LogLevel:  "warn",
	}
}
