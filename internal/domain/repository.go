// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"edr/internal/core/entity"
)

// --- Filter & Pagination ---

// ListFilter contains common filtering options for list operations.
// Module-specific filtering (the intervention pipeline) runs in memory
// on top of the listed collection; this filter covers the store level.
type ListFilter struct {
	// Search performs case-insensitive substring search on searchable fields
	Search string

	// IncludeArchived includes soft-deleted records
	IncludeArchived bool

	// OrderBy specifies sorting (e.g. "id", "-created_at")
	OrderBy string

	// Pagination. Limit <= 0 means no limit.
	Limit  int
	Offset int
}

// DefaultListFilter returns sensible defaults for HTTP listings.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "id",
	}
}

// All returns a filter that lists the entire collection in ID order.
// The intervention filter pipeline operates on this.
func All(includeArchived bool) ListFilter {
	return ListFilter{IncludeArchived: includeArchived, OrderBy: "id"}
}

// ListResult contains paginated results.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// --- Repository Interface ---

// Repository defines CRUD operations for business records.
// Implementations: memstore.Collection (default backend) and the
// postgres base repository.
type Repository[T entity.Entity] interface {
	// Create inserts a new record and assigns the next sequential ID
	// (max existing ID + 1, or 1 for an empty collection).
	Create(ctx context.Context, record T) error

	// GetByID retrieves a record by ID
	GetByID(ctx context.Context, id int64) (T, error)

	// Update modifies an existing record. The incoming version must
	// match the stored one; the repository bumps it on success.
	// The record ID is immutable.
	Update(ctx context.Context, record T) error

	// SetArchived sets or clears the archived mark. Records are never
	// hard-deleted; services only ever set it.
	SetArchived(ctx context.Context, id int64, archived bool) error

	// List retrieves records with filtering and pagination
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)

	// Exists checks if a record with the given ID exists
	Exists(ctx context.Context, id int64) (bool, error)
}

// --- Hooks ---

// HookEvent represents lifecycle event type.
type HookEvent string

const (
	BeforeCreate  HookEvent = "before_create"
	AfterCreate   HookEvent = "after_create"
	BeforeUpdate  HookEvent = "before_update"
	AfterUpdate   HookEvent = "after_update"
	BeforeArchive HookEvent = "before_archive"
	AfterArchive  HookEvent = "after_archive"
)

// Hook is a function that runs at specific lifecycle points.
type Hook[T any] func(ctx context.Context, record T) error

// HookRegistry stores lifecycle hooks for an entity type.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook for the specified event.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes all hooks for the specified event.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, record T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

// OnBeforeCreate registers a hook to run before create.
func (r *HookRegistry[T]) OnBeforeCreate(hook Hook[T]) { r.On(BeforeCreate, hook) }

// OnAfterCreate registers a hook to run after create.
func (r *HookRegistry[T]) OnAfterCreate(hook Hook[T]) { r.On(AfterCreate, hook) }

// OnBeforeUpdate registers a hook to run before update.
func (r *HookRegistry[T]) OnBeforeUpdate(hook Hook[T]) { r.On(BeforeUpdate, hook) }

// OnAfterUpdate registers a hook to run after update.
func (r *HookRegistry[T]) OnAfterUpdate(hook Hook[T]) { r.On(AfterUpdate, hook) }

// OnBeforeArchive registers a hook to run before archive.
func (r *HookRegistry[T]) OnBeforeArchive(hook Hook[T]) { r.On(BeforeArchive, hook) }

// OnAfterArchive registers a hook to run after archive.
func (r *HookRegistry[T]) OnAfterArchive(hook Hook[T]) { r.On(AfterArchive, hook) }
