package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix viper uses for environment variable overrides,
// e.g. RESMAP_LOGGING_LEVEL overrides logging.level.
const envPrefix = "RESMAP"

// Loader loads configuration from a resmap.yaml file with environment
// variable overrides layered on top, following precedence env > file >
// defaults.
type Loader struct {
	configPath string
}

// NewLoader creates a configuration loader for the file at configPath.
func NewLoader(configPath string) *Loader {
	return &Loader{configPath: configPath}
}

// Load reads the config file (if present), applies environment variable
// overrides, and validates the result. A missing config file is not an
// error: defaults apply in its place.
func (l *Loader) Load() (*Config, error) {
	cfg := Default()

	if fileExists(l.configPath) {
		data, err := os.ReadFile(l.configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file %q: %w", l.configPath, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", l.configPath, err)
		}
	}

	l.applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (l *Loader) applyEnvOverrides(cfg *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.IsSet("directories.vendor") {
		cfg.Directories.Vendor = v.GetString("directories.vendor")
	}
	if v.IsSet("directories.packageFile") {
		cfg.Directories.PackageFile = v.GetString("directories.packageFile")
	}
	if v.IsSet("logging.level") {
		cfg.Logging.Level = v.GetString("logging.level")
	}
	if v.IsSet("logging.format") {
		cfg.Logging.Format = v.GetString("logging.format")
	}
	if v.IsSet("install.autoInstall") {
		cfg.Install.AutoInstall = v.GetBool("install.autoInstall")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
