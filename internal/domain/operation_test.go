package domain_test

import (
	"errors"
	"testing"

	"github.com/resmap-dev/resmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationKind_String(t *testing.T) {
	assert.Equal(t, "AddResourceMapping", domain.OpKindAddResourceMapping.String())
	assert.Equal(t, "RemoveResourceMapping", domain.OpKindRemoveResourceMapping.String())
}

func TestAddResourceMappingOp_ExecuteAndRollback_EmptySlot(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/app/views")
	mapping := domain.NewResourceMapping(path, []domain.PathReference{"views"}).Unwrap()

	op := domain.NewAddResourceMappingOp(mapping)
	require.NoError(t, op.Execute(file))
	assert.True(t, file.HasResourceMapping(path))

	require.NoError(t, op.Rollback(file))
	assert.False(t, file.HasResourceMapping(path))
}

func TestAddResourceMappingOp_Rollback_RestoresPrevious(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/app/views")
	original := domain.NewResourceMapping(path, []domain.PathReference{"views"}).Unwrap()
	file.AddResourceMapping(original)

	replacement := domain.NewResourceMapping(path, []domain.PathReference{"views2"}).Unwrap()
	op := domain.NewAddResourceMappingOp(replacement)
	require.NoError(t, op.Execute(file))

	got, _ := file.GetResourceMapping(path)
	assert.Same(t, replacement, got)

	require.NoError(t, op.Rollback(file))
	got, _ = file.GetResourceMapping(path)
	assert.Same(t, original, got)
}

func TestAddResourceMappingOp_Rollback_NoopWithoutExecute(t *testing.T) {
	file := domain.NewRootPackageFile()
	mapping := domain.NewResourceMapping(domain.MustRepositoryPath("/app/views"), []domain.PathReference{"views"}).Unwrap()
	op := domain.NewAddResourceMappingOp(mapping)

	assert.NoError(t, op.Rollback(file))
	assert.Equal(t, 0, file.Len())
}

func TestRemoveResourceMappingOp_ExecuteAndRollback(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/app/views")
	mapping := domain.NewResourceMapping(path, []domain.PathReference{"views"}).Unwrap()
	file.AddResourceMapping(mapping)

	op := domain.NewRemoveResourceMappingOp(path)
	require.NoError(t, op.Execute(file))
	assert.False(t, file.HasResourceMapping(path))

	require.NoError(t, op.Rollback(file))
	got, ok := file.GetResourceMapping(path)
	require.True(t, ok)
	assert.Same(t, mapping, got)
}

func TestRemoveResourceMappingOp_ExecuteOnMissingIsNoop(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/missing")
	op := domain.NewRemoveResourceMappingOp(path)

	require.NoError(t, op.Execute(file))
	// Rollback after a no-op Execute must also be a no-op.
	require.NoError(t, op.Rollback(file))
	assert.Equal(t, 0, file.Len())
}

// failingOp always fails Execute and records whether Rollback was called.
type failingOp struct {
	rolledBack bool
}

func (f *failingOp) Kind() domain.OperationKind         { return domain.OpKindRemoveResourceMapping }
func (f *failingOp) Execute(*domain.RootPackageFile) error {
	return errors.New("boom")
}
func (f *failingOp) Rollback(*domain.RootPackageFile) error {
	f.rolledBack = true
	return nil
}
func (f *failingOp) String() string { return "failing op" }

func TestTransaction_RollsBackCompletedStepsOnFailure(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/app/views")
	mapping := domain.NewResourceMapping(path, []domain.PathReference{"views"}).Unwrap()

	addOp := domain.NewAddResourceMappingOp(mapping)
	failing := &failingOp{}

	tx := domain.NewTransaction(addOp, failing)
	err := tx.Apply(file)

	require.Error(t, err)
	assert.False(t, failing.rolledBack)
	assert.False(t, file.HasResourceMapping(path))
}

func TestTransaction_SucceedsWhenAllStepsSucceed(t *testing.T) {
	file := domain.NewRootPackageFile()
	path := domain.MustRepositoryPath("/app/views")
	mapping := domain.NewResourceMapping(path, []domain.PathReference{"views"}).Unwrap()

	tx := domain.NewTransaction(domain.NewAddResourceMappingOp(mapping))
	require.NoError(t, tx.Apply(file))
	assert.True(t, file.HasResourceMapping(path))
}

func TestTransaction_ID_IsUniquePerTransaction(t *testing.T) {
	a := domain.NewTransaction()
	b := domain.NewTransaction()

	assert.NotEmpty(t, a.ID())
	assert.NotEmpty(t, b.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}
