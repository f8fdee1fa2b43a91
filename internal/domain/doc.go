// Package domain implements the resource-mapping / conflict / transaction
// core: ResourceMapping entities, the RepositoryPathConflict bipartite graph
// they participate in, the ConflictDetector that (re)computes that graph, and
// the AtomicOperation protocol used to mutate a RootPackageFile with
// guaranteed rollback.
//
// # Result[T] usage
//
// Construction helpers (NewRepositoryPath, NewResourceMapping, ...) return
// Result[T] so validation failures compose without an early return at every
// call site. Methods that mutate already-constructed state (Load, Unload,
// AddConflict, Operation.Execute/Rollback) return a plain error instead —
// they are leaf calls, not pipeline stages, and the error there is the
// interesting part, not the composition.
//
// Use Result[T] for:
//   - construction / validation helpers composed with Map/FlatMap
//   - internal pipeline stages built from such helpers
//
// Use (T, error) for:
//   - public API boundaries (pkg/resmap)
//   - mutating methods on already-constructed entities
//   - CLI command handlers
//
// # Ownership
//
// A ResourceMapping owns its filesystemPaths, loadErrors, and conflicts
// lookup. A RepositoryPathConflict is shared between the mappings that claim
// its path; its mappings set is a set of back-references and must never be
// the only thing keeping a mapping reachable. See mapping.go and conflict.go.
package domain
