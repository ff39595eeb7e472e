// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"edr/internal/core/apperror"
	appctx "edr/internal/core/context"
	"edr/internal/core/entity"
	"edr/internal/core/tx"
	"edr/internal/domain/audit"
	"edr/pkg/logger"
)

// RecordService provides business logic common to all record types.
// Module services embed it and register hooks for entity-specific rules.
type RecordService[T entity.Entity] struct {
	repo      Repository[T]
	txManager tx.Manager
	trail     audit.Trail
	hooks     *HookRegistry[T]

	// entityName for error messages and audit attribution
	entityName string
}

// RecordServiceConfig configures the record service.
type RecordServiceConfig[T entity.Entity] struct {
	Repo       Repository[T]
	TxManager  tx.Manager
	Trail      audit.Trail
	EntityName string
}

// NewRecordService creates a new record service.
func NewRecordService[T entity.Entity](cfg RecordServiceConfig[T]) *RecordService[T] {
	txm := cfg.TxManager
	if txm == nil {
		txm = tx.NopManager{}
	}
	trail := cfg.Trail
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &RecordService[T]{
		repo:       cfg.Repo,
		txManager:  txm,
		trail:      trail,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *RecordService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

// EntityName returns the name used in errors and audit entries.
func (s *RecordService[T]) EntityName() string {
	return s.entityName
}

func (s *RecordService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	// If entity already returns structured AppError, keep it.
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

func (s *RecordService[T]) normalizeGetErr(err error, id int64) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, id)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", id)
}

// record writes an audit entry. Best-effort: failures are logged only,
// the business operation has already succeeded.
func (s *RecordService[T]) record(ctx context.Context, action audit.Action, id int64, changes any) {
	var payload json.RawMessage
	if changes != nil {
		if raw, err := json.Marshal(changes); err == nil {
			payload = raw
		}
	}
	err := s.trail.Record(ctx, audit.Entry{
		Entity:   s.entityName,
		EntityID: id,
		Action:   action,
		User:     appctx.ActingUser(ctx),
		Changes:  payload,
	})
	if err != nil {
		logger.Warn(ctx, "audit record failed",
			"entity", s.entityName, "id", id, "action", action, "error", err)
	}
}

// Create validates and stores a new record.
// The full record is assembled in memory before the store commit, so a
// failed create leaves no observable state change.
func (s *RecordService[T]) Create(ctx context.Context, record T) error {
	// 1. Run before-create hooks; module defaults are applied here
	if err := s.hooks.Run(ctx, BeforeCreate, record); err != nil {
		return err
	}

	// 2. Validate entity invariants, with defaults in place
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 3. Create in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("create %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-create hooks (outside transaction)
	if err := s.hooks.Run(ctx, AfterCreate, record); err != nil {
		logger.Warn(ctx, "after-create hook failed", "entity", s.entityName, "error", err)
	}

	s.record(ctx, audit.ActionCreate, record.GetID(), record)
	return nil
}

// GetByID retrieves a record by ID.
func (s *RecordService[T]) GetByID(ctx context.Context, id int64) (T, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return record, s.normalizeGetErr(err, id)
	}
	return record, nil
}

// Update validates and stores changes to an existing record.
func (s *RecordService[T]) Update(ctx context.Context, record T) error {
	// 1. Validate entity invariants
	if err := record.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}

	// 2. Run before-update hooks
	if err := s.hooks.Run(ctx, BeforeUpdate, record); err != nil {
		return err
	}

	// 3. Update in transaction
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("update %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewNotFound(s.entityName, record.GetID())
		}
		return err
	}

	// 4. Run after-update hooks
	if err := s.hooks.Run(ctx, AfterUpdate, record); err != nil {
		logger.Warn(ctx, "after-update hook failed", "entity", s.entityName, "error", err)
	}

	s.record(ctx, audit.ActionUpdate, record.GetID(), record)
	return nil
}

// Archive soft-deletes a record. Archiving is one-way.
func (s *RecordService[T]) Archive(ctx context.Context, id int64) error {
	// 1. Get record first (for hooks)
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return s.normalizeGetErr(err, id)
	}

	// 2. Run before-archive hooks (module services set status here)
	if err := s.hooks.Run(ctx, BeforeArchive, record); err != nil {
		return err
	}

	// 3. Persist in transaction: hook mutations plus the archived mark
	record.SetArchived(true)
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, record); err != nil {
			return fmt.Errorf("archive %s: %w", s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 4. Run after-archive hooks
	if err := s.hooks.Run(ctx, AfterArchive, record); err != nil {
		logger.Warn(ctx, "after-archive hook failed", "entity", s.entityName, "error", err)
	}

	s.record(ctx, audit.ActionArchive, id, nil)
	return nil
}

// List retrieves records with filtering.
func (s *RecordService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists checks if a record exists.
func (s *RecordService[T]) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repo.Exists(ctx, id)
}
