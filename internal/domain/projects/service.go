package projects

import (
	"context"

	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// Repository persists projects.
type Repository = domain.Repository[*Project]

// Service provides business logic for projects.
type Service struct {
	*domain.RecordService[*Project]
}

// NewService creates a new project service.
func NewService(repo Repository, txm tx.Manager, trail audit.Trail) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Project]{
		Repo:       repo,
		TxManager:  txm,
		Trail:      trail,
		EntityName: "project",
	})

	base.Hooks().OnBeforeCreate(func(ctx context.Context, p *Project) error {
		if p.Status == "" {
			p.Status = StatusPending
		}
		if p.StartDate.IsZero() {
			p.StartDate = p.CreatedAt
		}
		return nil
	})

	return &Service{RecordService: base}
}
