package entity

import (
	"context"
	"time"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Entity is the contract all top-level business records satisfy.
// The generic service and store layers operate through it.
type Entity interface {
	Validatable

	GetID() int64
	SetID(id int64)
	IsArchived() bool
	SetArchived(archived bool)
	GetVersion() int
	SetVersion(v int)
	Touch()
}

// Record contains common fields for all business records.
// IDs are sequential integers assigned by the store (max existing + 1).
type Record struct {
	// ID is the primary key
	ID int64 `db:"id" json:"id"`

	// Archived marks a soft-deleted record. Archiving is one-way:
	// no un-archive operation is exposed by the services.
	Archived bool `db:"archived" json:"archived"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit timestamps
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewRecord creates a Record with timestamps set.
// The ID stays zero until the store assigns it.
func NewRecord() Record {
	now := time.Now().UTC()
	return Record{
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID returns the record ID.
func (r *Record) GetID() int64 { return r.ID }

// SetID assigns the record ID (store only).
func (r *Record) SetID(id int64) { r.ID = id }

// IsArchived reports whether the record is soft-deleted.
func (r *Record) IsArchived() bool { return r.Archived }

// SetArchived sets the archived flag.
func (r *Record) SetArchived(archived bool) { r.Archived = archived }

// GetVersion returns the optimistic locking version.
func (r *Record) GetVersion() int { return r.Version }

// SetVersion updates the version number (used by repository after sync).
func (r *Record) SetVersion(v int) { r.Version = v }

// Touch updates the UpdatedAt timestamp. The version is bumped by the
// repository on a successful update, never by callers.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}
