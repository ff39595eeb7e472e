// Package audit provides the change journal contract.
// Every create/update/archive across business modules is recorded;
// the dashboard activity feed reads the most recent entries.
package audit

import (
	"context"
	"encoding/json"
	"time"
)

// Action identifies the kind of change recorded.
type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionArchive Action = "archive"
)

// Entry is one recorded change.
type Entry struct {
	ID       string          `db:"id" json:"id"`
	Entity   string          `db:"entity" json:"entity"`
	EntityID int64           `db:"entity_id" json:"entityId"`
	Action   Action          `db:"action" json:"action"`
	User     string          `db:"acting_user" json:"user"`
	At       time.Time       `db:"at" json:"at"`
	Changes  json.RawMessage `db:"changes" json:"changes,omitempty"`
}

// Trail records entries and serves the recent-activity feed.
// Recording is best-effort: failures are logged, never propagated to
// the business operation that triggered them.
type Trail interface {
	Record(ctx context.Context, entry Entry) error
	Recent(ctx context.Context, limit int) ([]Entry, error)
}

// NopTrail discards all entries. Used in tests that do not assert on audit.
type NopTrail struct{}

// Record implements Trail.
func (NopTrail) Record(ctx context.Context, entry Entry) error { return nil }

// Recent implements Trail.
func (NopTrail) Recent(ctx context.Context, limit int) ([]Entry, error) { return nil, nil }

var _ Trail = NopTrail{}
