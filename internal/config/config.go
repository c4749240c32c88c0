package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// appDir is the directory under ~/.config holding config and logs
const appDir = "user-manager-tui"

// Config holds the application configuration
type Config struct {
	Log LogConfig `toml:"log"`
	UI  UIConfig  `toml:"ui"`
}

// LogConfig controls where and how much the app logs
type LogConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

// UIConfig holds terminal UI preferences
type UIConfig struct {
	Accent string `toml:"accent"`
	Demo   bool   `toml:"demo"`
}

// Default returns the default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Log: LogConfig{
			Path:  filepath.Join(homeDir, ".config", appDir, "debug.log"),
			Level: "info",
		},
		UI: UIConfig{
			Accent: "62",
		},
	}
}

// DefaultPath returns the standard config file location
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir, "config.toml"), nil
}

// Load loads configuration from the standard location
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads configuration from a specific path
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	// No config file means defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if cfg.Log.Path != "" {
		cfg.Log.Path = expandPath(cfg.Log.Path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at startup
func (c *Config) Validate() error {
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses the configured log level
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}

// Save saves the configuration to the standard location
func (c *Config) Save() error {
	configPath, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo saves the configuration to a specific path
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return nil
}
