// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces, not on a concrete store:
// the postgres backend wraps real transactions, the in-memory backend
// provides per-operation atomicity and runs the function directly.
package tx

import (
	"context"
)

// Manager defines the contract for transaction management.
// Implementations handle BEGIN, COMMIT, ROLLBACK, and nested transaction support.
type Manager interface {
	// RunInTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	//
	// Nested calls reuse the existing transaction from context.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopManager runs the function without any transaction demarcation.
// Used by the in-memory backend, where each repository operation is
// atomic on its own (mutex-guarded copy swap).
type NopManager struct{}

// RunInTransaction implements Manager.
func (NopManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var _ Manager = NopManager{}
