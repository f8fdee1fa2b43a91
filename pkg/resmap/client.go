// Package resmap is the public facade over the repository-path mapping
// core: it wires package discovery, the JSON-backed package file store, the
// optional git installer, and the conflict detector behind a single Client.
package resmap

import (
	"context"
	"fmt"

	"github.com/resmap-dev/resmap/internal/adapters"
	"github.com/resmap-dev/resmap/internal/discovery"
	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/resmap-dev/resmap/internal/installer"
	"github.com/resmap-dev/resmap/internal/recipe"
	"github.com/resmap-dev/resmap/internal/store"
)

// Client is the high-level API for resmap operations. It acts as a facade
// delegating to discovery, store, installer, and the core domain types.
// Not safe for concurrent use: the Client holds no locks, and the root
// package file, package collection and conflict detector it wraps are plain
// maps and slices that its methods read and mutate directly.
type Client struct {
	config    Config
	store     *store.FSStore
	installer *installer.Installer
	file      *domain.RootPackageFile
	packages  *domain.StaticPackageCollection
	detector  *domain.ConflictDetector
}

// NewClient constructs a Client, loading the root package file from disk
// and scanning the vendor directory for installed packages.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	fsStore := store.NewFSStore(cfg.PackageFilePath)
	file, err := fsStore.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load root package file: %w", err)
	}

	packages, loadErrors := discovery.Scan(ctx, cfg.VendorDir)
	for _, le := range loadErrors {
		cfg.Logger.Warn(ctx, "package_discovery_error", "kind", int(le.Kind), "reference", string(le.Reference), "message", le.Message)
	}

	return &Client{
		config:    cfg,
		store:     fsStore,
		installer: installer.New(cfg.Logger),
		file:      file,
		packages:  packages,
		detector:  domain.NewConflictDetector(),
	}, nil
}

// Config returns the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// RootPackageFile returns the in-memory root package file the client
// operates on. Mutations must go through Apply so they are persisted.
func (c *Client) RootPackageFile() *domain.RootPackageFile {
	return c.file
}

// Packages returns the package collection built from the last discovery
// scan.
func (c *Client) Packages() domain.PackageCollection {
	return c.packages
}

// LoadMapping loads the mapping at path against the client's package
// collection, installing the containing package first if AutoInstall is
// enabled and its directory does not yet exist.
func (c *Client) LoadMapping(ctx context.Context, path domain.RepositoryPath, containingPackageName domain.PackageName, repoURL string) error {
	mapping, ok := c.file.GetResourceMapping(path)
	if !ok {
		return fmt.Errorf("no mapping recorded at repository path %q", path.String())
	}

	pkg, err := c.packages.Get(containingPackageName)
	if err != nil {
		if !c.config.AutoInstall || repoURL == "" {
			return err
		}
		if installErr := c.installPackage(ctx, containingPackageName, repoURL); installErr != nil {
			return installErr
		}
		pkg, err = c.packages.Get(containingPackageName)
		if err != nil {
			return err
		}
	}

	fsAdapter := adapters.NewOSFilesystem()
	return mapping.Load(ctx, fsAdapter, pkg, c.packages, c.config.FailFast)
}

func (c *Client) installPackage(ctx context.Context, name domain.PackageName, repoURL string) error {
	installPath := c.config.VendorDir + "/" + string(name)
	if err := c.installer.Ensure(ctx, installer.Source{
		Name:        name,
		RepoURL:     repoURL,
		InstallPath: installPath,
	}); err != nil {
		return fmt.Errorf("auto-install package %q: %w", name, err)
	}

	c.packages.Add(domain.NewSimplePackage(name, installPath))
	return nil
}

// RefreshConflicts recomputes conflicts across every currently loaded
// mapping in the root package file.
func (c *Client) RefreshConflicts(ctx context.Context) error {
	return c.detector.Refresh(c.file.All())
}

// ActiveConflicts refreshes conflict detection and returns every conflict
// currently tracked.
func (c *Client) ActiveConflicts(ctx context.Context) ([]*domain.RepositoryPathConflict, error) {
	if err := c.RefreshConflicts(ctx); err != nil {
		return nil, err
	}
	return c.detector.Active(), nil
}

// Apply runs txn against the client's root package file, persisting the
// result to the backing store only if every step of the transaction
// succeeded. A failed transaction leaves the in-memory file rolled back and
// the on-disk file untouched.
func (c *Client) Apply(ctx context.Context, txn *domain.Transaction) error {
	c.config.Logger.Debug(ctx, "applying transaction", "transactionID", txn.ID())

	if err := txn.Apply(c.file); err != nil {
		return fmt.Errorf("apply transaction: %w", err)
	}
	if err := c.store.Save(ctx, c.file); err != nil {
		return fmt.Errorf("persist root package file: %w", err)
	}

	c.config.Logger.Info(ctx, "transaction applied", "transactionID", txn.ID())
	return nil
}

// GenerateRecipe renders the build recipe source for every Enabled mapping.
func (c *Client) GenerateRecipe(opts recipe.Options) ([]byte, error) {
	return recipe.Generate(c.file, opts)
}
