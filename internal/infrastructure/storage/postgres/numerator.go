package postgres

import (
	"context"
	"fmt"
	"time"

	"edr/internal/core/numerator"
)

// Numerator issues sequential references backed by the prefixed
// sequences table. The upsert increments and returns atomically, so
// concurrent callers never share a number.
type Numerator struct {
	txm   *TxManager
	table string
}

// NewNumerator creates the PostgreSQL reference generator.
func NewNumerator(txm *TxManager, prefix string) *Numerator {
	return &Numerator{txm: txm, table: prefix + "sequences"}
}

// NextReference implements numerator.Generator.
func (n *Numerator) NextReference(ctx context.Context, cfg numerator.Config, period time.Time) (string, error) {
	sql := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES ($1, 1)
		ON CONFLICT (key) DO UPDATE SET value = %s.value + 1
		RETURNING value`, n.table, n.table)

	var num int64
	querier := n.txm.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, sql, cfg.Key(period)).Scan(&num); err != nil {
		return "", fmt.Errorf("next sequence value: %w", err)
	}
	return cfg.Format(period, num), nil
}

var _ numerator.Generator = (*Numerator)(nil)
