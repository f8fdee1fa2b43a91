package resmap_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resmap-dev/resmap/internal/adapters"
	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/resmap-dev/resmap/pkg/resmap"
)

func writePackageManifest(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "resmap.toml"), []byte("name = \""+name+"\"\n"), 0644))
}

func TestNewClient_RejectsInvalidConfig(t *testing.T) {
	_, err := resmap.NewClient(context.Background(), resmap.Config{})
	assert.Error(t, err)
}

func TestNewClient_ScansVendorDirAndLoadsEmptyPackageFile(t *testing.T) {
	vendorDir := t.TempDir()
	writePackageManifest(t, filepath.Join(vendorDir, "widget"), "widget")

	packageFile := filepath.Join(t.TempDir(), "resmap-packages.json")

	client, err := resmap.NewClient(context.Background(), resmap.Config{
		VendorDir:       vendorDir,
		PackageFilePath: packageFile,
		Logger:          adapters.NewNoopLogger(),
	})
	require.NoError(t, err)

	assert.True(t, client.Packages().Contains(domain.PackageName("widget")))
	assert.Equal(t, 0, client.RootPackageFile().Len())
}

func TestClient_Apply_PersistsAddedMapping(t *testing.T) {
	ctx := context.Background()
	vendorDir := t.TempDir()
	writePackageManifest(t, filepath.Join(vendorDir, "widget"), "widget")

	packageFile := filepath.Join(t.TempDir(), "resmap-packages.json")

	client, err := resmap.NewClient(ctx, resmap.Config{
		VendorDir:       vendorDir,
		PackageFilePath: packageFile,
		Logger:          adapters.NewNoopLogger(),
	})
	require.NoError(t, err)

	path := domain.NewRepositoryPath("/lib/widget").Unwrap()
	mapping := domain.NewResourceMapping(path, []domain.PathReference{"local/widget.so"}).Unwrap()
	op := domain.NewAddResourceMappingOp(mapping)
	txn := domain.NewTransaction(op)

	require.NoError(t, client.Apply(ctx, txn))
	assert.True(t, client.RootPackageFile().HasResourceMapping(path))

	_, err = os.Stat(packageFile)
	assert.NoError(t, err)
}
