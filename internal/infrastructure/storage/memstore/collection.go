// Package memstore provides the default in-memory storage backend.
// Collections are safe for concurrent use; every read hands out a copy
// so callers can mutate freely and persist through Update.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
	"edr/internal/domain"
)

// CloneFunc returns a deep copy of a record. Records holding slices or
// maps must copy them; flat records can return a dereferenced copy.
type CloneFunc[T entity.Entity] func(T) T

// MatchFunc reports whether a record matches a search term. The term
// is already lower-cased. Nil disables search for the collection.
type MatchFunc[T entity.Entity] func(record T, term string) bool

// Collection is a generic map-backed repository.
type Collection[T entity.Entity] struct {
	mu      sync.RWMutex
	records map[int64]T
	clone   CloneFunc[T]
	match   MatchFunc[T]

	// Latency is slept on every operation when positive. It mirrors
	// the artificial delay of the original client; tests leave it zero.
	Latency time.Duration
}

// NewCollection creates an empty collection.
func NewCollection[T entity.Entity](clone CloneFunc[T], match MatchFunc[T]) *Collection[T] {
	return &Collection[T]{
		records: make(map[int64]T),
		clone:   clone,
		match:   match,
	}
}

func (c *Collection[T]) simulate() {
	if c.Latency > 0 {
		time.Sleep(c.Latency)
	}
}

// nextID returns max existing ID + 1, or 1 for an empty collection.
// Caller holds the write lock.
func (c *Collection[T]) nextID() int64 {
	var max int64
	for id := range c.records {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// Create implements domain.Repository.
func (c *Collection[T]) Create(ctx context.Context, record T) error {
	c.simulate()
	c.mu.Lock()
	defer c.mu.Unlock()

	record.SetID(c.nextID())
	if record.GetVersion() == 0 {
		record.SetVersion(1)
	}
	c.records[record.GetID()] = c.clone(record)
	return nil
}

// GetByID implements domain.Repository.
func (c *Collection[T]) GetByID(ctx context.Context, id int64) (T, error) {
	c.simulate()
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	stored, ok := c.records[id]
	if !ok {
		return zero, apperror.NewNotFound("record", id)
	}
	return c.clone(stored), nil
}

// Update implements domain.Repository. The stored record is swapped in
// one step under the write lock, so readers never observe a partial
// update.
func (c *Collection[T]) Update(ctx context.Context, record T) error {
	c.simulate()
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.records[record.GetID()]
	if !ok {
		return apperror.NewNotFound("record", record.GetID())
	}
	if record.GetVersion() != stored.GetVersion() {
		return apperror.NewConcurrentModification("record", record.GetID())
	}

	record.SetVersion(stored.GetVersion() + 1)
	c.records[record.GetID()] = c.clone(record)
	return nil
}

// SetArchived implements domain.Repository.
func (c *Collection[T]) SetArchived(ctx context.Context, id int64, archived bool) error {
	c.simulate()
	c.mu.Lock()
	defer c.mu.Unlock()

	stored, ok := c.records[id]
	if !ok {
		return apperror.NewNotFound("record", id)
	}
	next := c.clone(stored)
	next.SetArchived(archived)
	next.SetVersion(stored.GetVersion() + 1)
	next.Touch()
	c.records[id] = next
	return nil
}

// List implements domain.Repository.
func (c *Collection[T]) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[T], error) {
	c.simulate()
	c.mu.RLock()
	defer c.mu.RUnlock()

	term := strings.ToLower(strings.TrimSpace(filter.Search))

	items := make([]T, 0, len(c.records))
	for _, stored := range c.records {
		if !filter.IncludeArchived && stored.IsArchived() {
			continue
		}
		if term != "" && (c.match == nil || !c.match(stored, term)) {
			continue
		}
		items = append(items, c.clone(stored))
	}

	sortRecords(items, filter.OrderBy)

	total := int64(len(items))
	if filter.Offset > 0 {
		if filter.Offset >= len(items) {
			items = nil
		} else {
			items = items[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}

	return domain.ListResult[T]{
		Items:      items,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

// Exists implements domain.Repository.
func (c *Collection[T]) Exists(ctx context.Context, id int64) (bool, error) {
	c.simulate()
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.records[id]
	return ok, nil
}

// sortRecords orders by ascending ID, the collection's insertion
// order. A leading "-" flips the direction; other fields fall back to
// ID order since memstore only knows the base record columns.
func sortRecords[T entity.Entity](items []T, orderBy string) {
	desc := strings.HasPrefix(orderBy, "-")
	sort.Slice(items, func(i, j int) bool {
		if desc {
			return items[j].GetID() < items[i].GetID()
		}
		return items[i].GetID() < items[j].GetID()
	})
}
