// Package numerator provides domain contracts for document auto-numbering.
// Implementations live in the infrastructure layer (postgres sequences) and
// in the in-memory store.
package numerator

import (
	"context"
	"time"
)

// Generator generates sequential document references.
// Pattern: PREFIX-YEAR-NNNN (e.g. DEV-2026-0001 for quotes).
type Generator interface {
	// NextReference generates the next reference for the given config and period.
	NextReference(ctx context.Context, cfg Config, period time.Time) (string, error)
}
