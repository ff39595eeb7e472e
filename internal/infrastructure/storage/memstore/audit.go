package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"edr/internal/domain/audit"
)

// AuditTrail keeps a bounded ring of recent entries for the dashboard
// activity feed. Older entries are dropped silently.
type AuditTrail struct {
	mu      sync.Mutex
	entries []audit.Entry
	max     int
}

// NewAuditTrail creates a trail holding at most max entries.
func NewAuditTrail(max int) *AuditTrail {
	if max <= 0 {
		max = 200
	}
	return &AuditTrail{max: max}
}

// Record implements audit.Trail.
func (t *AuditTrail) Record(ctx context.Context, entry audit.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append(t.entries, entry)
	if len(t.entries) > t.max {
		t.entries = t.entries[len(t.entries)-t.max:]
	}
	return nil
}

// Recent implements audit.Trail. Entries come back newest first.
func (t *AuditTrail) Recent(ctx context.Context, limit int) ([]audit.Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.entries)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]audit.Entry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, t.entries[i])
	}
	return out, nil
}

var _ audit.Trail = (*AuditTrail)(nil)
