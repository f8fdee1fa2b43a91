package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// OperationKind identifies the type of atomic operation.
type OperationKind int

const (
	// OpKindAddResourceMapping inserts or replaces a mapping in a RootPackageFile.
	OpKindAddResourceMapping OperationKind = iota
	// OpKindRemoveResourceMapping deletes a mapping from a RootPackageFile.
	OpKindRemoveResourceMapping
)

// String renders the kind for logging.
func (k OperationKind) String() string {
	switch k {
	case OpKindAddResourceMapping:
		return "AddResourceMapping"
	case OpKindRemoveResourceMapping:
		return "RemoveResourceMapping"
	default:
		return "Unknown"
	}
}

// Operation is an execute/rollback pair applied to a RootPackageFile.
// Execute performs the mutation, capturing whatever state Rollback needs.
// Rollback reverses the effect using only state captured during Execute, and
// must be safe to call even when Execute was a no-op. Operations are
// data-holding objects, not pure functions: each concrete type stores its
// own undo snapshot between the two calls.
type Operation interface {
	// Kind returns the operation type.
	Kind() OperationKind

	// Execute performs the mutation against file.
	Execute(file *RootPackageFile) error

	// Rollback reverses the effect of the last Execute call against file.
	// Called at most once per successful Execute, per the transaction's
	// reverse-order discipline.
	Rollback(file *RootPackageFile) error

	// String returns a human-readable description.
	String() string
}

// AddResourceMappingOp inserts mapping at its repository path, replacing
// whatever was there before. Rollback restores the replaced mapping, or
// removes the inserted one if the path was previously empty.
type AddResourceMappingOp struct {
	mapping *ResourceMapping

	executed bool
	previous *ResourceMapping
	hadPrior bool
}

// NewAddResourceMappingOp creates an operation that adds mapping to a
// RootPackageFile when executed.
func NewAddResourceMappingOp(mapping *ResourceMapping) *AddResourceMappingOp {
	return &AddResourceMappingOp{mapping: mapping}
}

// Kind returns OpKindAddResourceMapping.
func (op *AddResourceMappingOp) Kind() OperationKind {
	return OpKindAddResourceMapping
}

// Execute adds op.mapping to file, snapshotting whatever mapping previously
// occupied the same repository path so Rollback can restore it.
func (op *AddResourceMappingOp) Execute(file *RootPackageFile) error {
	path := op.mapping.GetRepositoryPath()
	if prior, exists := file.GetResourceMapping(path); exists {
		op.previous = prior
		op.hadPrior = true
	}
	file.AddResourceMapping(op.mapping)
	op.executed = true
	return nil
}

// Rollback undoes Execute: restores the previous mapping at this path, or
// removes the one that was added if the path was previously unoccupied. A
// no-op if Execute was never called.
func (op *AddResourceMappingOp) Rollback(file *RootPackageFile) error {
	if !op.executed {
		return nil
	}
	if op.hadPrior {
		file.AddResourceMapping(op.previous)
	} else {
		file.RemoveResourceMapping(op.mapping.GetRepositoryPath())
	}
	return nil
}

// String renders a short description of the operation.
func (op *AddResourceMappingOp) String() string {
	return fmt.Sprintf("add mapping %s", op.mapping.GetRepositoryPath().String())
}

// RemoveResourceMappingOp removes whatever mapping occupies a repository
// path. This is the canonical atomic operation described in spec §4.F: if
// the file contains a mapping for the target path, Execute snapshots it and
// removes it; otherwise it records that there is nothing to undo, and
// Rollback is then a no-op.
type RemoveResourceMappingOp struct {
	path RepositoryPath

	executed bool
	removed  bool
	snapshot *ResourceMapping
}

// NewRemoveResourceMappingOp creates an operation that removes whatever
// mapping occupies path when executed.
func NewRemoveResourceMappingOp(path RepositoryPath) *RemoveResourceMappingOp {
	return &RemoveResourceMappingOp{path: path}
}

// Kind returns OpKindRemoveResourceMapping.
func (op *RemoveResourceMappingOp) Kind() OperationKind {
	return OpKindRemoveResourceMapping
}

// Execute removes the mapping at op.path from file, if one exists.
func (op *RemoveResourceMappingOp) Execute(file *RootPackageFile) error {
	op.executed = true
	if prior, exists := file.GetResourceMapping(op.path); exists {
		op.snapshot = prior
		op.removed = true
		file.RemoveResourceMapping(op.path)
	}
	return nil
}

// Rollback reinserts the snapshotted mapping if Execute actually removed
// one. A no-op if Execute found nothing to remove, or was never called.
func (op *RemoveResourceMappingOp) Rollback(file *RootPackageFile) error {
	if !op.executed || !op.removed {
		return nil
	}
	file.AddResourceMapping(op.snapshot)
	return nil
}

// String renders a short description of the operation.
func (op *RemoveResourceMappingOp) String() string {
	return fmt.Sprintf("remove mapping %s", op.path.String())
}

// Transaction executes a sequence of Operations against a RootPackageFile in
// order. On failure at step k, it rolls back steps k-1 through 0 in reverse
// before returning the triggering error; a failing Execute must leave the
// file unchanged once that rollback completes.
type Transaction struct {
	id  string
	ops []Operation
}

// NewTransaction builds a transaction over ops, executed in the given order.
// Each transaction is stamped with a random ID so callers can correlate
// Apply's log lines and error messages with one attempt.
func NewTransaction(ops ...Operation) *Transaction {
	return &Transaction{id: uuid.New().String(), ops: ops}
}

// ID returns the transaction's unique identifier, for logging and
// diagnostics. It has no bearing on Apply's semantics.
func (t *Transaction) ID() string {
	return t.id
}

// Apply runs every operation in order. If one fails, every operation
// executed before it is rolled back in reverse order and the triggering
// error is returned; file is left exactly as it was before Apply was called.
func (t *Transaction) Apply(file *RootPackageFile) error {
	for i, op := range t.ops {
		if err := op.Execute(file); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = t.ops[j].Rollback(file)
			}
			return fmt.Errorf("transaction %s: %s: %w", t.id, op.String(), err)
		}
	}
	return nil
}
