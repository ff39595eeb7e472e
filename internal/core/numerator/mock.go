package numerator

import (
	"context"
	"time"
)

// MockGenerator is a test implementation of Generator.
// Use in unit tests to avoid database dependencies.
type MockGenerator struct {
	NextReferenceFunc func(ctx context.Context, cfg Config, period time.Time) (string, error)
}

// NextReference implements Generator.
func (m *MockGenerator) NextReference(ctx context.Context, cfg Config, period time.Time) (string, error) {
	if m.NextReferenceFunc != nil {
		return m.NextReferenceFunc(ctx, cfg, period)
	}
	// Default: return predictable mock reference
	return cfg.Format(period, 1), nil
}

// Ensure compile-time interface compliance.
var _ Generator = (*MockGenerator)(nil)
