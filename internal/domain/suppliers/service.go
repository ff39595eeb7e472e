package suppliers

import (
	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// Repository persists suppliers.
type Repository = domain.Repository[*Supplier]

// Service provides business logic for suppliers.
type Service struct {
	*domain.RecordService[*Supplier]
}

// NewService creates a new supplier service.
func NewService(repo Repository, txm tx.Manager, trail audit.Trail) *Service {
	return &Service{
		RecordService: domain.NewRecordService(domain.RecordServiceConfig[*Supplier]{
			Repo:       repo,
			TxManager:  txm,
			Trail:      trail,
			EntityName: "supplier",
		}),
	}
}
