package domain

import (
	"context"
	"fmt"
	"strings"
)

// MappingState is one of the three-state-plus-Unloaded lifecycle positions a
// ResourceMapping occupies. Unloaded iff containingPackage is absent;
// otherwise Conflict iff conflicts is non-empty; otherwise NotFound iff
// filesystemPaths is empty; otherwise Enabled.
type MappingState int

const (
	// StateUnloaded is the initial state and the state Unload returns to.
	StateUnloaded MappingState = iota
	// StateEnabled means the mapping is loaded, has no conflicts, and every
	// reference resolved (or at least one did, with the rest soft-failed).
	StateEnabled
	// StateNotFound means the mapping is loaded, has no conflicts, but no
	// reference resolved to an existing file.
	StateNotFound
	// StateConflict means another mapping claims an overlapping repository path.
	StateConflict
)

// String renders the state for logging and diagnostics.
func (s MappingState) String() string {
	switch s {
	case StateUnloaded:
		return "Unloaded"
	case StateEnabled:
		return "Enabled"
	case StateNotFound:
		return "NotFound"
	case StateConflict:
		return "Conflict"
	default:
		return "Unknown"
	}
}

// LoadErrorKind classifies a LoadError without requiring callers to type-switch
// on the underlying domain error, and keeps the classification stable across
// a JSON round-trip (see SPEC_FULL.md open question on this).
type LoadErrorKind int

const (
	// KindNoSuchPackage means a "@name:" reference named an unknown package.
	KindNoSuchPackage LoadErrorKind = iota
	// KindFileNotFound means a resolved absolute path does not exist.
	KindFileNotFound
)

// LoadError is a single reference-resolution failure captured during a soft
// (failFast=false) Load. It is data, not a thrown exception: the mapping
// collects these and keeps going.
type LoadError struct {
	Kind      LoadErrorKind
	Reference PathReference
	Message   string
}

// Error implements the error interface so a LoadError can be used directly
// wherever an error is expected (e.g. wrapped into ErrMultiple).
func (e LoadError) Error() string {
	return e.Message
}

// ResourceMapping binds a repository path to one or more path references,
// resolves those references against a containing package and a package
// registry, and tracks the conflicts other mappings create by claiming an
// overlapping repository path.
//
// A ResourceMapping is created Unloaded (detached) and moves through Load /
// Unload; Destruction (letting the value be garbage collected) is only valid
// while Unloaded, since a loaded mapping may be a live member of shared
// RepositoryPathConflicts.
type ResourceMapping struct {
	repositoryPath RepositoryPath
	pathReferences []PathReference

	filesystemPaths   []string
	containingPackage Package
	loadErrors        []LoadError

	conflictsByPath map[string]*RepositoryPathConflict
	conflictOrder   []string

	state MappingState
}

// NewResourceMapping validates and constructs a ResourceMapping. Both the
// repository path and the reference list are stored verbatim once validated.
func NewResourceMapping(repositoryPath RepositoryPath, pathReferences []PathReference) Result[*ResourceMapping] {
	if len(pathReferences) == 0 {
		return Err[*ResourceMapping](ErrInvalidReferences{Reason: "must provide at least one path reference"})
	}
	for _, ref := range pathReferences {
		if strings.TrimSpace(string(ref)) == "" {
			return Err[*ResourceMapping](ErrInvalidReferences{Reason: "path reference must not be empty"})
		}
	}

	refs := make([]PathReference, len(pathReferences))
	copy(refs, pathReferences)

	return Ok(&ResourceMapping{
		repositoryPath:  repositoryPath,
		pathReferences:  refs,
		conflictsByPath: make(map[string]*RepositoryPathConflict),
		state:           StateUnloaded,
	})
}

// GetRepositoryPath returns the mapping's (immutable) repository path.
func (m *ResourceMapping) GetRepositoryPath() RepositoryPath {
	return m.repositoryPath
}

// GetPathReferences returns the mapping's (immutable) path references.
func (m *ResourceMapping) GetPathReferences() []PathReference {
	out := make([]PathReference, len(m.pathReferences))
	copy(out, m.pathReferences)
	return out
}

// GetState returns the mapping's current lifecycle state.
func (m *ResourceMapping) GetState() MappingState {
	return m.state
}

// IsLoaded reports whether the mapping is in any loaded state.
func (m *ResourceMapping) IsLoaded() bool {
	return m.state != StateUnloaded
}

// IsEnabled reports whether the mapping is loaded, conflict-free, and has at
// least one resolved filesystem path.
func (m *ResourceMapping) IsEnabled() bool {
	return m.state == StateEnabled
}

// IsNotFound reports whether the mapping is loaded, conflict-free, and has
// no resolved filesystem path.
func (m *ResourceMapping) IsNotFound() bool {
	return m.state == StateNotFound
}

// IsConflicting reports whether the mapping currently has at least one conflict.
func (m *ResourceMapping) IsConflicting() bool {
	return m.state == StateConflict
}

// resolveReference resolves a single reference against the containing
// package and the registry, per the grammar in spec §6. It does not stat the
// filesystem; callers do that with the returned path.
func resolveReference(ref PathReference, containingPackage Package, packages PackageCollection) (string, error) {
	p := ref.parse()
	if !p.isCrossPackage {
		return containingPackage.InstallPath() + "/" + p.relPath, nil
	}
	if !packages.Contains(p.packageName) {
		return "", ErrNoSuchPackage{Package: string(p.packageName), Reference: string(ref)}
	}
	pkg, err := packages.Get(p.packageName)
	if err != nil {
		return "", ErrNoSuchPackage{Package: string(p.packageName), Reference: string(ref)}
	}
	return pkg.InstallPath() + "/" + p.relPath, nil
}

// Load resolves every path reference against containingPackage and packages,
// in input order. Fails with ErrAlreadyLoaded if the mapping isn't Unloaded.
//
// For each reference: unknown cross-package names produce ErrNoSuchPackage;
// resolved paths that don't exist on disk (per fs) produce ErrFileNotFound.
// With failFast, the first such error aborts Load and the mapping stays
// Unloaded with no partial state committed. Without failFast, errors are
// collected into loadErrors and Load always succeeds, leaving the mapping
// Enabled or NotFound depending on whether anything resolved.
func (m *ResourceMapping) Load(ctx context.Context, fs FS, containingPackage Package, packages PackageCollection, failFast bool) error {
	if m.state != StateUnloaded {
		return ErrAlreadyLoaded{RepositoryPath: m.repositoryPath.String()}
	}

	var resolvedPaths []string
	var errs []LoadError

	for _, ref := range m.pathReferences {
		resolved, err := resolveReference(ref, containingPackage, packages)
		if err != nil {
			if failFast {
				return err
			}
			errs = append(errs, LoadError{
				Kind:      KindNoSuchPackage,
				Reference: ref,
				Message:   err.Error(),
			})
			continue
		}

		if !fs.Exists(ctx, resolved) {
			notFound := ErrFileNotFound{
				Reference:         string(ref),
				RepositoryPath:    m.repositoryPath.String(),
				ContainingPackage: string(containingPackage.Name()),
			}
			if failFast {
				return notFound
			}
			errs = append(errs, LoadError{
				Kind:      KindFileNotFound,
				Reference: ref,
				Message:   notFound.Error(),
			})
			continue
		}

		resolvedPaths = append(resolvedPaths, resolved)
	}

	m.filesystemPaths = resolvedPaths
	m.loadErrors = errs
	m.containingPackage = containingPackage
	m.refreshState()
	return nil
}

// Unload detaches the mapping from every conflict it is part of and returns
// it to StateUnloaded. Fails with ErrNotLoaded if already Unloaded.
//
// Implementation note on ordering: m.conflicts is cleared before calling
// removeMapping on the snapshotted conflicts, so the symmetric callback
// (conflict.removeMapping) never re-enters this mapping's own conflict map.
func (m *ResourceMapping) Unload() error {
	if m.state == StateUnloaded {
		return ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}

	snapshot := make([]*RepositoryPathConflict, 0, len(m.conflictOrder))
	for _, key := range m.conflictOrder {
		snapshot = append(snapshot, m.conflictsByPath[key])
	}
	m.conflictsByPath = make(map[string]*RepositoryPathConflict)
	m.conflictOrder = nil

	for _, c := range snapshot {
		c.removeMapping(m)
	}

	m.filesystemPaths = nil
	m.loadErrors = nil
	m.containingPackage = nil
	m.state = StateUnloaded
	return nil
}

// AddConflict attaches c to the mapping at c.RepositoryPath(). Fails with
// ErrNotLoaded when Unloaded, or ErrPathNotWithin when c's path is not
// base-related to this mapping's path (with this mapping's path as the
// base — see IsBasePath). If a different conflict already occupies that
// path, it is detached first via removeMapping so the bipartite invariant
// never has two conflicts claiming one path on the same mapping.
func (m *ResourceMapping) AddConflict(c *RepositoryPathConflict) error {
	if m.state == StateUnloaded {
		return ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}
	if !IsBasePath(m.repositoryPath, c.RepositoryPath()) {
		return ErrPathNotWithin{
			MappingPath:  m.repositoryPath.String(),
			ConflictPath: c.RepositoryPath().String(),
		}
	}

	key := c.RepositoryPath().String()
	if existing, ok := m.conflictsByPath[key]; ok {
		if existing == c {
			return nil
		}
		existing.removeMapping(m)
	} else {
		m.conflictOrder = append(m.conflictOrder, key)
	}

	m.conflictsByPath[key] = c
	c.addMapping(m)
	m.refreshState()
	return nil
}

// RemoveConflict detaches c if it is the conflict currently installed at
// c.RepositoryPath(); a no-op otherwise. Requires the mapping to be loaded.
func (m *ResourceMapping) RemoveConflict(c *RepositoryPathConflict) error {
	if m.state == StateUnloaded {
		return ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}

	key := c.RepositoryPath().String()
	existing, ok := m.conflictsByPath[key]
	if !ok || existing != c {
		return nil
	}

	delete(m.conflictsByPath, key)
	for i, k := range m.conflictOrder {
		if k == key {
			m.conflictOrder = append(m.conflictOrder[:i], m.conflictOrder[i+1:]...)
			break
		}
	}
	c.removeMapping(m)
	m.refreshState()
	return nil
}

// GetFilesystemPaths returns the resolved absolute paths, in input order.
func (m *ResourceMapping) GetFilesystemPaths() ([]string, error) {
	if m.state == StateUnloaded {
		return nil, ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}
	out := make([]string, len(m.filesystemPaths))
	copy(out, m.filesystemPaths)
	return out, nil
}

// GetLoadErrors returns the soft load errors captured the last time Load ran.
func (m *ResourceMapping) GetLoadErrors() ([]LoadError, error) {
	if m.state == StateUnloaded {
		return nil, ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}
	out := make([]LoadError, len(m.loadErrors))
	copy(out, m.loadErrors)
	return out, nil
}

// GetContainingPackage returns the package this mapping was loaded from.
func (m *ResourceMapping) GetContainingPackage() (Package, error) {
	if m.state == StateUnloaded {
		return nil, ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}
	return m.containingPackage, nil
}

// GetConflicts returns the mapping's conflicts, in insertion order of their
// repository paths.
func (m *ResourceMapping) GetConflicts() ([]*RepositoryPathConflict, error) {
	if m.state == StateUnloaded {
		return nil, ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}
	out := make([]*RepositoryPathConflict, 0, len(m.conflictOrder))
	for _, key := range m.conflictOrder {
		out = append(out, m.conflictsByPath[key])
	}
	return out, nil
}

// GetConflictingMappings returns the set-union of every conflict's members,
// minus this mapping itself, deduplicated by identity.
func (m *ResourceMapping) GetConflictingMappings() ([]*ResourceMapping, error) {
	if m.state == StateUnloaded {
		return nil, ErrNotLoaded{RepositoryPath: m.repositoryPath.String()}
	}

	seen := make(map[*ResourceMapping]bool)
	var out []*ResourceMapping
	for _, key := range m.conflictOrder {
		for _, other := range m.conflictsByPath[key].mappings {
			if other == m || seen[other] {
				continue
			}
			seen[other] = true
			out = append(out, other)
		}
	}
	return out, nil
}

// GetConflictingPackages projects GetConflictingMappings through each
// mapping's containing package.
func (m *ResourceMapping) GetConflictingPackages() ([]Package, error) {
	mappings, err := m.GetConflictingMappings()
	if err != nil {
		return nil, err
	}
	out := make([]Package, 0, len(mappings))
	for _, other := range mappings {
		out = append(out, other.containingPackage)
	}
	return out, nil
}

// refreshState is the total function of (conflicts.empty, filesystemPaths.empty)
// described in spec §4.C. It is deterministic and never fails, and is called
// on every mutation that can affect either side.
func (m *ResourceMapping) refreshState() {
	switch {
	case len(m.conflictOrder) > 0:
		m.state = StateConflict
	case len(m.filesystemPaths) == 0:
		m.state = StateNotFound
	default:
		m.state = StateEnabled
	}
}

// String renders a short diagnostic description, mirroring the operation
// descriptions used elsewhere in the core.
func (m *ResourceMapping) String() string {
	return fmt.Sprintf("mapping %s (%s)", m.repositoryPath.String(), m.state)
}
