// Package config loads resmap's configuration file, layering environment
// variable overrides on top of file contents on top of built-in defaults.
// The core (internal/domain) never imports this package: only cmd/resmap
// depends on it, copying the values it needs into a pkg/resmap.Config.
package config

import (
	"fmt"
)

// Config is resmap's full runtime configuration.
type Config struct {
	Directories DirectoriesConfig `mapstructure:"directories" yaml:"directories"`
	Logging     LoggingConfig     `mapstructure:"logging" yaml:"logging"`
	Install     InstallConfig     `mapstructure:"install" yaml:"install"`
}

// DirectoriesConfig locates the on-disk pieces resmap operates on.
type DirectoriesConfig struct {
	// Vendor is the root directory package discovery scans for installed
	// packages (each immediate child with a resmap.toml is a package).
	Vendor string `mapstructure:"vendor" yaml:"vendor"`

	// PackageFile is the path to the JSON-backed root package file.
	PackageFile string `mapstructure:"packageFile" yaml:"packageFile"`
}

// LoggingConfig holds the logger settings read from the config file and
// environment. They are loaded and validated only: cmd/resmap builds its
// logger from the --verbose, --quiet and --log-json flags and does not read
// these fields.
type LoggingConfig struct {
	// Level is one of DEBUG, INFO, WARN, ERROR.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is one of "console" or "json".
	Format string `mapstructure:"format" yaml:"format"`
}

// InstallConfig controls automatic package installation.
type InstallConfig struct {
	// AutoInstall enables cloning a package's repository automatically when a
	// mapping is loaded against a containing package that discovery did not
	// find and a repository URL is supplied.
	AutoInstall bool `mapstructure:"autoInstall" yaml:"autoInstall"`
}

// Default returns resmap's built-in configuration defaults.
func Default() *Config {
	return &Config{
		Directories: DirectoriesConfig{
			Vendor:      "vendor",
			PackageFile: "resmap-packages.json",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "console",
		},
		Install: InstallConfig{
			AutoInstall: false,
		},
	}
}

// Validate checks the configuration for internally-inconsistent values.
func (c *Config) Validate() error {
	if c.Directories.Vendor == "" {
		return fmt.Errorf("directories.vendor: must not be empty")
	}
	if c.Directories.PackageFile == "" {
		return fmt.Errorf("directories.packageFile: must not be empty")
	}
	switch c.Logging.Level {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		return fmt.Errorf("logging.level: invalid value %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: invalid value %q", c.Logging.Format)
	}
	return nil
}
