package domain_test

import (
	"context"
	"testing"

	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepositoryPathConflict_Construction(t *testing.T) {
	path := domain.MustRepositoryPath("/app/views")
	conflict := domain.NewRepositoryPathConflict(path)

	assert.True(t, path.Equals(conflict.RepositoryPath()))
	assert.Equal(t, 0, conflict.Len())
	assert.True(t, conflict.Inert())
}

func TestRepositoryPathConflict_MembershipViaMappings(t *testing.T) {
	pkg := domain.NewSimplePackage("app/core", "/vendor/app-core")
	fs := newStubFS("/vendor/app-core/views")
	ctx := context.Background()

	a := domain.NewResourceMapping(domain.MustRepositoryPath("/app/views"), []domain.PathReference{"views"}).Unwrap()
	b := domain.NewResourceMapping(domain.MustRepositoryPath("/app/views"), []domain.PathReference{"views"}).Unwrap()
	require.NoError(t, a.Load(ctx, fs, pkg, domain.NewStaticPackageCollection(), false))
	require.NoError(t, b.Load(ctx, fs, pkg, domain.NewStaticPackageCollection(), false))

	conflict := domain.NewRepositoryPathConflict(domain.MustRepositoryPath("/app/views"))
	require.NoError(t, a.AddConflict(conflict))
	assert.True(t, conflict.Inert())
	require.NoError(t, b.AddConflict(conflict))

	assert.Equal(t, 2, conflict.Len())
	members := conflict.Mappings()
	require.Len(t, members, 2)
	assert.Same(t, a, members[0])
	assert.Same(t, b, members[1])
}

func TestRepositoryPathConflict_MappingsReturnsDefensiveCopy(t *testing.T) {
	a := loadedMapping(t, "/app/views")
	conflict := domain.NewRepositoryPathConflict(domain.MustRepositoryPath("/app/views"))
	require.NoError(t, a.AddConflict(conflict))

	members := conflict.Mappings()
	members[0] = nil

	assert.Equal(t, 1, conflict.Len())
	assert.NotNil(t, conflict.Mappings()[0])
}
