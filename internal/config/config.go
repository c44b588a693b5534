// Package config provides configuration management for bk using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/bk/internal/backup"
	"github.com/thoreinstein/bk/internal/errors"
	"github.com/thoreinstein/bk/internal/logging"
	"github.com/thoreinstein/bk/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version         int    `mapstructure:"version" yaml:"version"`
	RestoreStrategy string `mapstructure:"restore_strategy" yaml:"restore_strategy"`
	AssumeYes       bool   `mapstructure:"assume_yes" yaml:"assume_yes"`
	LogFormat       string `mapstructure:"log_format" yaml:"log_format"`
}

// Init initializes Viper with default configuration.
// Call this before Load; it discards any previously loaded state.
func Init() {
	viper.Reset()

	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Only bk's own directory is searched. bk runs in arbitrary working
	// directories, where a config.yaml usually belongs to something else.
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("BK")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
	viper.SetDefault("restore_strategy", string(backup.DefaultStrategy))
	viper.SetDefault("assume_yes", false)
	viper.SetDefault("log_format", string(logging.FormatText))
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(paths.ExpandHome(path))
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Implicit load without a file: defaults apply.
			if path != "" {
				return nil, errors.Wrapf(err, "config file not found at %s", path)
			}
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	cfg := Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	return cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Version:         1,
		RestoreStrategy: string(backup.DefaultStrategy),
		LogFormat:       string(logging.FormatText),
	}
}
