// Package discovery scans a vendor root directory for installed packages,
// building the domain.PackageCollection the core resolves repository path
// references against. This is filesystem I/O and metadata parsing, kept
// deliberately outside internal/domain.
package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/resmap-dev/resmap/internal/domain"
)

// manifest is the shape of a package's resmap.toml metadata file.
type manifest struct {
	Name string `toml:"name"`
}

// ManifestFileName is the per-package metadata file discovery looks for.
const ManifestFileName = "resmap.toml"

// Scan walks the immediate children of root and returns a PackageCollection
// built from every child directory containing a resmap.toml that declares a
// name. Children without a manifest are skipped silently; children whose
// manifest cannot be read, fails to parse, or lacks a name are skipped and
// reported as a LoadError rather than aborting the scan.
func Scan(ctx context.Context, root string) (*domain.StaticPackageCollection, []domain.LoadError) {
	collection := domain.NewStaticPackageCollection()
	var loadErrors []domain.LoadError

	entries, err := os.ReadDir(root)
	if err != nil {
		return collection, []domain.LoadError{{
			Kind:    domain.KindFileNotFound,
			Message: fmt.Sprintf("read vendor root %q: %v", root, err),
		}}
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			loadErrors = append(loadErrors, domain.LoadError{
				Kind:    domain.KindFileNotFound,
				Message: ctx.Err().Error(),
			})
			break
		}
		if !entry.IsDir() {
			continue
		}

		pkgDir := filepath.Join(root, entry.Name())
		pkg, err := loadPackageManifest(pkgDir)
		if err != nil {
			loadErrors = append(loadErrors, domain.LoadError{
				Kind:      domain.KindFileNotFound,
				Reference: domain.PathReference(entry.Name()),
				Message:   err.Error(),
			})
			continue
		}
		if pkg == nil {
			// No manifest present: not every vendor-root child is a package.
			continue
		}

		collection.Add(*pkg)
	}

	return collection, loadErrors
}

// loadPackageManifest reads and parses dir/resmap.toml. Returns (nil, nil)
// when the manifest file is simply absent.
func loadPackageManifest(dir string) (*domain.SimplePackage, error) {
	manifestPath := filepath.Join(dir, ManifestFileName)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", manifestPath, err)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", manifestPath, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("%s: missing required field %q", manifestPath, "name")
	}

	pkg := domain.NewSimplePackage(domain.PackageName(m.Name), dir)
	return &pkg, nil
}
