package domain

import (
	"fmt"
	"strings"
)

// Construction errors

// ErrInvalidPath indicates a repository path failed validation: it must be
// absolute, contain no "." or ".." segments, and carry no trailing slash
// except for the root path itself.
type ErrInvalidPath struct {
	Path   string
	Reason string
}

func (e ErrInvalidPath) Error() string {
	return fmt.Sprintf("invalid repository path %q: %s", e.Path, e.Reason)
}

// ErrInvalidReferences indicates a mapping was constructed with zero path
// references, or with a reference that is empty.
type ErrInvalidReferences struct {
	Reason string
}

func (e ErrInvalidReferences) Error() string {
	return fmt.Sprintf("invalid path references: %s", e.Reason)
}

// Load / lifecycle errors

// ErrAlreadyLoaded indicates Load was called on a mapping whose state is not Unloaded.
type ErrAlreadyLoaded struct {
	RepositoryPath string
}

func (e ErrAlreadyLoaded) Error() string {
	return fmt.Sprintf("mapping %q is already loaded", e.RepositoryPath)
}

// ErrNotLoaded indicates a query, conflict operation, or Unload was called on
// an Unloaded mapping. Programmer error: it indicates misuse, not a runtime
// condition to recover from.
type ErrNotLoaded struct {
	RepositoryPath string
}

func (e ErrNotLoaded) Error() string {
	return fmt.Sprintf("mapping %q is not loaded", e.RepositoryPath)
}

// ErrNoSuchPackage indicates a "@name:" reference names a package the
// registry does not contain.
type ErrNoSuchPackage struct {
	Package   string
	Reference string
}

func (e ErrNoSuchPackage) Error() string {
	return fmt.Sprintf("reference %q: no such package %q", e.Reference, e.Package)
}

// ErrFileNotFound indicates a reference resolved to an absolute filesystem
// path that does not exist.
type ErrFileNotFound struct {
	Reference         string
	RepositoryPath    string
	ContainingPackage string
}

func (e ErrFileNotFound) Error() string {
	return fmt.Sprintf("reference %q for %q (package %q): file not found",
		e.Reference, e.RepositoryPath, e.ContainingPackage)
}

// Conflict-graph errors

// ErrPathNotWithin indicates AddConflict was called with a conflict whose
// repository path is not base-related to the mapping's own path. Programmer
// error: the detector and mapping.AddConflict are the only legitimate
// callers and both satisfy this invariant by construction.
type ErrPathNotWithin struct {
	MappingPath  string
	ConflictPath string
}

func (e ErrPathNotWithin) Error() string {
	return fmt.Sprintf("conflict path %q is not within mapping path %q", e.ConflictPath, e.MappingPath)
}

// Aggregation

// ErrMultiple aggregates multiple errors into one, for a caller that needs
// to report every failure of a batch rather than just the first.
type ErrMultiple struct {
	Errors []error
}

func (e ErrMultiple) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors occurred:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %v\n", i+1, err)
	}
	return b.String()
}

// Unwrap supports errors.Is / errors.As over the aggregate.
func (e ErrMultiple) Unwrap() []error {
	return e.Errors
}

// UserFacingError converts an error into a short, jargon-free message for
// CLI output. Falls back to err.Error() for anything it doesn't recognize.
func UserFacingError(err error) string {
	switch e := err.(type) {
	case ErrInvalidPath:
		return fmt.Sprintf("Invalid path %q: %s", e.Path, e.Reason)
	case ErrInvalidReferences:
		return fmt.Sprintf("Invalid path references: %s", e.Reason)
	case ErrAlreadyLoaded:
		return fmt.Sprintf("%q is already loaded.", e.RepositoryPath)
	case ErrNotLoaded:
		return fmt.Sprintf("%q has not been loaded yet.", e.RepositoryPath)
	case ErrNoSuchPackage:
		return fmt.Sprintf("Package %q referenced by %q was not found.", e.Package, e.Reference)
	case ErrFileNotFound:
		return fmt.Sprintf("Reference %q for %q does not exist on disk.", e.Reference, e.RepositoryPath)
	case ErrPathNotWithin:
		return fmt.Sprintf("Conflict path %q does not fall under %q.", e.ConflictPath, e.MappingPath)
	case ErrMultiple:
		if len(e.Errors) == 1 {
			return UserFacingError(e.Errors[0])
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Multiple errors occurred:\n")
		for i, sub := range e.Errors {
			fmt.Fprintf(&b, "%d. %s\n", i+1, UserFacingError(sub))
		}
		return b.String()
	default:
		return err.Error()
	}
}
