// Package config provides configuration management for nvsetup using Viper.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/nvsetup/nvsetup/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// ConfigDir overrides the Neovim configuration directory.
	ConfigDir string `mapstructure:"config_dir" yaml:"config_dir,omitempty"`

	// SourceFile overrides the default init.lua source.
	SourceFile string `mapstructure:"source_file" yaml:"source_file,omitempty"`

	// PackageManager forces a package manager kind instead of detecting one.
	PackageManager string `mapstructure:"package_manager" yaml:"package_manager,omitempty"`

	// SkipDeps makes install default to configuration-only runs.
	SkipDeps bool `mapstructure:"skip_deps" yaml:"skip_deps,omitempty"`

	// KeepGoing makes install attempt all dependency commands by default.
	KeepGoing bool `mapstructure:"keep_going" yaml:"keep_going,omitempty"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.AppConfigDir())

	// Environment variable support
	viper.SetEnvPrefix("NVSETUP")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("version", 1)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
