// Package store persists a domain.RootPackageFile's mapping list as JSON.
// The core (internal/domain) never imports this package and never touches
// the file directly; callers load a RootPackageFile once at startup and save
// it back after mutating operations commit.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/resmap-dev/resmap/internal/domain"
)

const defaultFileName = "resmap-packages.json"

// record is the on-disk shape of a single ResourceMapping. Only the
// declarative fields survive a save; loaded state (filesystem paths,
// conflicts) is always recomputed by Load/ConflictDetector after restore.
type record struct {
	RepositoryPath string   `json:"repositoryPath"`
	PathReferences []string `json:"pathReferences"`
}

// FSStore persists a RootPackageFile to a single JSON file on disk, using a
// write-to-temp-then-rename sequence so a crash mid-save never leaves a
// truncated or partially written file in place.
type FSStore struct {
	path string
}

// NewFSStore creates a store backed by the file at path.
func NewFSStore(path string) *FSStore {
	return &FSStore{path: path}
}

// NewFSStoreInDir creates a store backed by defaultFileName inside dir.
func NewFSStoreInDir(dir string) *FSStore {
	return &FSStore{path: filepath.Join(dir, defaultFileName)}
}

// Load reads the backing file and reconstructs a RootPackageFile with every
// mapping in its Unloaded state. A missing file is not an error: it yields
// an empty RootPackageFile, matching a fresh install with nothing recorded
// yet.
func (s *FSStore) Load(ctx context.Context) (*domain.RootPackageFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file := domain.NewRootPackageFile()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return nil, fmt.Errorf("read package file %q: %w", s.path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse package file %q: %w", s.path, err)
	}

	for _, rec := range records {
		repoPathResult := domain.NewRepositoryPath(rec.RepositoryPath)
		if repoPathResult.IsErr() {
			return nil, fmt.Errorf("package file %q: invalid repository path %q: %w", s.path, rec.RepositoryPath, repoPathResult.UnwrapErr())
		}
		repoPath := repoPathResult.Unwrap()

		refs := make([]domain.PathReference, len(rec.PathReferences))
		for i, r := range rec.PathReferences {
			refs[i] = domain.PathReference(r)
		}

		mapping := domain.NewResourceMapping(repoPath, refs)
		if mapping.IsErr() {
			return nil, fmt.Errorf("package file %q: entry %q: %w", s.path, rec.RepositoryPath, mapping.UnwrapErr())
		}

		file.AddResourceMapping(mapping.Unwrap())
	}

	return file, nil
}

// Save writes every mapping in file to the backing path as an ordered JSON
// array, replacing its previous contents atomically.
func (s *FSStore) Save(ctx context.Context, file *domain.RootPackageFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mappings := file.All()
	records := make([]record, 0, len(mappings))
	for _, m := range mappings {
		refs := m.GetPathReferences()
		recRefs := make([]string, len(refs))
		for i, r := range refs {
			recRefs[i] = string(r)
		}
		records = append(records, record{
			RepositoryPath: m.GetRepositoryPath().String(),
			PathReferences: recRefs,
		})
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal package file: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create package file directory %q: %w", dir, err)
	}

	tempPath := s.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("write temp package file %q: %w", tempPath, err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("rename package file into place %q: %w", s.path, err)
	}

	return nil
}
