package discovery_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resmap-dev/resmap/internal/discovery"
	"github.com/resmap-dev/resmap/internal/domain"
)

func writeManifest(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := "name = \"" + name + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, discovery.ManifestFileName), []byte(content), 0644))
}

func TestScan_FindsPackagesWithManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, filepath.Join(root, "widget"), "widget")
	writeManifest(t, filepath.Join(root, "gadget"), "gadget")

	collection, loadErrors := discovery.Scan(context.Background(), root)

	assert.Empty(t, loadErrors)
	assert.True(t, collection.Contains(domain.PackageName("widget")))
	assert.True(t, collection.Contains(domain.PackageName("gadget")))

	pkg, err := collection.Get(domain.PackageName("widget"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "widget"), pkg.InstallPath())
}

func TestScan_SkipsDirectoriesWithoutManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "not-a-package"), 0755))
	writeManifest(t, filepath.Join(root, "widget"), "widget")

	collection, loadErrors := discovery.Scan(context.Background(), root)

	assert.Empty(t, loadErrors)
	assert.Len(t, collection.All(), 1)
	assert.False(t, collection.Contains(domain.PackageName("not-a-package")))
}

func TestScan_ReportsMalformedManifestAsLoadError(t *testing.T) {
	root := t.TempDir()
	badDir := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(badDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(badDir, discovery.ManifestFileName), []byte("not valid toml [[["), 0644))

	collection, loadErrors := discovery.Scan(context.Background(), root)

	assert.Empty(t, collection.All())
	require.Len(t, loadErrors, 1)
	assert.Equal(t, domain.KindFileNotFound, loadErrors[0].Kind)
}

func TestScan_ReportsMissingNameField(t *testing.T) {
	root := t.TempDir()
	emptyDir := filepath.Join(root, "nameless")
	require.NoError(t, os.MkdirAll(emptyDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(emptyDir, discovery.ManifestFileName), []byte(""), 0644))

	collection, loadErrors := discovery.Scan(context.Background(), root)

	assert.Empty(t, collection.All())
	require.Len(t, loadErrors, 1)
}

func TestScan_MissingRootReturnsLoadError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	collection, loadErrors := discovery.Scan(context.Background(), root)

	assert.Empty(t, collection.All())
	require.Len(t, loadErrors, 1)
	assert.Equal(t, domain.KindFileNotFound, loadErrors[0].Kind)
}
