package installer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resmap-dev/resmap/internal/adapters"
	"github.com/resmap-dev/resmap/internal/installer"
)

// initSourceRepo creates a real git repository with one commit on disk and
// returns its path, usable as a clone source via a file:// style local path.
func initSourceRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("hello"), 0644))

	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	_, err = worktree.Commit("initial commit", &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  time.Unix(0, 0),
		},
	})
	require.NoError(t, err)

	return dir
}

func TestInstaller_Ensure_ClonesMissingPackage(t *testing.T) {
	ctx := context.Background()
	sourceDir := initSourceRepo(t)

	parent := t.TempDir()
	installPath := filepath.Join(parent, "widget")

	inst := installer.New(adapters.NewNoopLogger())
	err := inst.Ensure(ctx, installer.Source{
		Name:        "widget",
		RepoURL:     sourceDir,
		InstallPath: installPath,
	})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(installPath, "README.md"))
	assert.NoError(t, err)
}

func TestInstaller_Ensure_SkipsExistingInstallPath(t *testing.T) {
	ctx := context.Background()

	parent := t.TempDir()
	installPath := filepath.Join(parent, "widget")
	require.NoError(t, os.MkdirAll(installPath, 0755))

	inst := installer.New(adapters.NewNoopLogger())
	err := inst.Ensure(ctx, installer.Source{
		Name:        "widget",
		RepoURL:     "https://example.invalid/does/not/matter.git",
		InstallPath: installPath,
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(installPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInstaller_Ensure_WrapsCloneFailure(t *testing.T) {
	ctx := context.Background()

	parent := t.TempDir()
	installPath := filepath.Join(parent, "missing-repo")

	inst := installer.New(adapters.NewNoopLogger())
	err := inst.Ensure(ctx, installer.Source{
		Name:        "widget",
		RepoURL:     filepath.Join(parent, "does-not-exist"),
		InstallPath: installPath,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "widget")
}
