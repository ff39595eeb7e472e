package interventions

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// Service provides business logic for interventions.
// Uses composition with domain.RecordService for common CRUD operations.
type Service struct {
	*domain.RecordService[*Intervention]
	repo Repository
}

// NewService creates a new intervention service.
func NewService(repo Repository, txm tx.Manager, trail audit.Trail) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Intervention]{
		Repo:       repo,
		TxManager:  txm,
		Trail:      trail,
		EntityName: "intervention",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
	}

	base.Hooks().OnBeforeCreate(svc.applyDefaults)
	base.Hooks().OnBeforeArchive(func(ctx context.Context, iv *Intervention) error {
		iv.Status = StatusArchived
		iv.Touch()
		return nil
	})

	return svc
}

// applyDefaults fills optional fields before create.
func (s *Service) applyDefaults(ctx context.Context, iv *Intervention) error {
	now := time.Now().UTC()
	if iv.CreatedAt.IsZero() {
		iv.CreatedAt = now
		iv.UpdatedAt = now
	}
	if iv.Status == "" {
		iv.Status = StatusToSchedule
	}
	if iv.Priority == "" {
		iv.Priority = PriorityMedium
	}
	if iv.Kind == "" {
		iv.Kind = KindOther
	}
	if iv.Deadline.IsZero() {
		iv.Deadline = iv.CreatedAt.Add(7 * 24 * time.Hour)
	}
	return nil
}

// Update replaces the base Update with transition checking: the stored
// status constrains which status the update may carry.
func (s *Service) Update(ctx context.Context, iv *Intervention) error {
	current, err := s.GetByID(ctx, iv.ID)
	if err != nil {
		return err
	}

	if current.Status == StatusArchived {
		return apperror.NewBusinessRule(apperror.CodeArchived,
			"archived interventions cannot be modified").
			WithDetail("id", iv.ID)
	}
	if iv.Status != "" && !current.Status.CanTransitionTo(iv.Status) {
		return apperror.NewInvalidTransition("intervention",
			string(current.Status), string(iv.Status))
	}

	iv.Touch()
	return s.RecordService.Update(ctx, iv)
}

// ChangeStatus moves an intervention through its lifecycle.
func (s *Service) ChangeStatus(ctx context.Context, id int64, next Status) (*Intervention, error) {
	iv, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("value", string(next))
	}
	if !iv.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransition("intervention",
			string(iv.Status), string(next))
	}
	iv.Status = next
	if next == StatusArchived {
		iv.SetArchived(true)
	}
	iv.Touch()
	if err := s.RecordService.Update(ctx, iv); err != nil {
		return nil, err
	}
	return iv, nil
}

// Search lists the full collection and applies the filter pipeline.
// The store always returns everything including archived records; the
// pipeline's archived-visibility predicate decides what is shown.
func (s *Service) Search(ctx context.Context, f Filter) ([]*Intervention, error) {
	result, err := s.repo.List(ctx, domain.All(true))
	if err != nil {
		return nil, err
	}
	return f.Apply(result.Items), nil
}
