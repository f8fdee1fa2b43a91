package domain

import "context"

// Package is an external entity exposing the two facts a ResourceMapping
// needs to resolve references against it: its name and its install
// directory. Package discovery and filesystem I/O live outside the core
// (see internal/discovery); the core only ever sees this interface.
type Package interface {
	Name() PackageName
	InstallPath() string
}

// PackageCollection exposes membership testing and lookup by name over the
// set of known packages. Lookup is expected to be O(1) amortized.
type PackageCollection interface {
	// Contains reports whether name refers to a known package.
	Contains(name PackageName) bool

	// Get returns the package named name, or ErrNoSuchPackage if it is not
	// known. Callers that already checked Contains still get a well-formed
	// error here rather than a nil dereference, since collections backing
	// this interface may be concurrently mutated by the discovery layer.
	Get(name PackageName) (Package, error)

	// All returns every known package, in iteration order.
	All() []Package
}

// FS is the filesystem dependency ResourceMapping.Load needs: existence
// checks for resolved reference paths. Kept intentionally narrow — the core
// never reads file contents or directory listings.
type FS interface {
	// Exists reports whether path exists on disk.
	Exists(ctx context.Context, path string) bool
}

// Logger is the structured logging abstraction the pkg/resmap client (around
// each applied transaction) and the installer use to report what they did,
// without coupling them to a concrete logging library.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	With(args ...any) Logger
}
