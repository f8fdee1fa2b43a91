package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/resmap-dev/resmap/internal/store"
)

func TestFSStore_Load_MissingFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	s := store.NewFSStoreInDir(dir)

	file, err := s.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, file.Len())
}

func TestFSStore_SaveThenLoad_RoundTrips(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := store.NewFSStoreInDir(dir)

	file := domain.NewRootPackageFile()
	pathA := domain.NewRepositoryPath("/lib/widget").Unwrap()
	mappingA := domain.NewResourceMapping(pathA, []domain.PathReference{"@widget:src/widget.so"}).Unwrap()
	file.AddResourceMapping(mappingA)

	pathB := domain.NewRepositoryPath("/lib/gadget").Unwrap()
	mappingB := domain.NewResourceMapping(pathB, []domain.PathReference{"local/gadget.so"}).Unwrap()
	file.AddResourceMapping(mappingB)

	require.NoError(t, s.Save(ctx, file))

	reloaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, reloaded.Len())

	got, ok := reloaded.GetResourceMapping(pathA)
	require.True(t, ok)
	assert.Equal(t, []domain.PathReference{"@widget:src/widget.so"}, got.GetPathReferences())
	assert.Equal(t, domain.StateUnloaded, got.GetState())
}

func TestFSStore_Save_WritesNoLeftoverTempFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := store.NewFSStoreInDir(dir)

	file := domain.NewRootPackageFile()
	require.NoError(t, s.Save(ctx, file))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "resmap-packages.json", entries[0].Name())
}

func TestFSStore_Load_RejectsInvalidRepositoryPath(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "resmap-packages.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"repositoryPath":"relative/not/absolute","pathReferences":["x"]}]`), 0644))

	s := store.NewFSStore(path)
	_, err := s.Load(ctx)
	assert.Error(t, err)
}
