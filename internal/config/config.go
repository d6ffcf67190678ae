package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application-level configuration of the CLI. The
// per-project state lives in each project's own document; this file
// only decides where projects live and how the tool logs.
type Config struct {
	Workspace string    `yaml:"workspace"`
	Log       LogConfig `yaml:"log"`
}

// LogConfig configures the rotating file log.
type LogConfig struct {
	FilePath   string `yaml:"file_path"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return Config{
		Workspace: cwd,
		Log: LogConfig{
			FilePath:   filepath.Join(configDir(), "fvc.log"),
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// Load reads the config from the default location. A missing file is
// not an error: defaults apply.
func Load() (Config, error) {
	return LoadFrom(filepath.Join(configDir(), "config.yaml"))
}

// LoadFrom reads the config from an explicit path, filling defaults
// for anything unset.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}

	if cfg.Workspace == "" {
		cfg.Workspace = DefaultConfig().Workspace
	}
	if cfg.Log.FilePath == "" {
		cfg.Log.FilePath = DefaultConfig().Log.FilePath
	}
	return cfg, nil
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "fvc")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "fvc")
	}
	return filepath.Join(home, ".config", "fvc")
}
