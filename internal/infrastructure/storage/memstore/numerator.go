package memstore

import (
	"context"
	"sync"
	"time"

	"edr/internal/core/numerator"
)

// Numerator issues sequential references per prefix and period key.
type Numerator struct {
	mu       sync.Mutex
	counters map[string]int64
}

// NewNumerator creates an empty numerator.
func NewNumerator() *Numerator {
	return &Numerator{counters: make(map[string]int64)}
}

// NextReference implements numerator.Generator.
func (n *Numerator) NextReference(ctx context.Context, cfg numerator.Config, period time.Time) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	key := cfg.Key(period)
	n.counters[key]++
	return cfg.Format(period, n.counters[key]), nil
}

var _ numerator.Generator = (*Numerator)(nil)
