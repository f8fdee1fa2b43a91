package resmap

import (
	"fmt"
	"path/filepath"

	"github.com/resmap-dev/resmap/internal/domain"
)

// Config holds the configuration for a Client.
type Config struct {
	// VendorDir is the root directory package discovery scans. Must be an
	// absolute path.
	VendorDir string

	// PackageFilePath is the path to the JSON-backed root package file.
	// Must be an absolute path.
	PackageFilePath string

	// AutoInstall enables cloning a package's repository when LoadMapping
	// names a containing package that discovery did not find and a
	// repository URL is supplied.
	AutoInstall bool

	// FailFast controls ResourceMapping.Load's error behavior: when true, the
	// first unresolvable reference aborts Load; when false, errors are
	// collected and Load always succeeds.
	FailFast bool

	// Logger receives structured diagnostics. Required.
	Logger domain.Logger
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.VendorDir == "" {
		return fmt.Errorf("vendorDir is required")
	}
	if !filepath.IsAbs(c.VendorDir) {
		return fmt.Errorf("vendorDir must be an absolute path: %s", c.VendorDir)
	}
	if c.PackageFilePath == "" {
		return fmt.Errorf("packageFilePath is required")
	}
	if !filepath.IsAbs(c.PackageFilePath) {
		return fmt.Errorf("packageFilePath must be an absolute path: %s", c.PackageFilePath)
	}
	if c.Logger == nil {
		return fmt.Errorf("logger is required")
	}
	return nil
}
