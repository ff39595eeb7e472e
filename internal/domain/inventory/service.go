package inventory

import (
	"context"

	"edr/internal/core/apperror"
	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// Service provides business logic for inventory items.
type Service struct {
	*domain.RecordService[*Item]
	repo Repository
}

// NewService creates a new inventory service.
func NewService(repo Repository, txm tx.Manager, trail audit.Trail) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Item]{
		Repo:       repo,
		TxManager:  txm,
		Trail:      trail,
		EntityName: "inventory item",
	})

	svc := &Service{RecordService: base, repo: repo}

	base.Hooks().OnBeforeCreate(func(ctx context.Context, item *Item) error {
		if item.Unit == "" {
			item.Unit = "pièce"
		}
		return nil
	})

	return svc
}

// AdjustStock applies a signed delta to an item's quantity. The
// adjustment is rejected if the resulting quantity would be negative.
func (s *Service) AdjustStock(ctx context.Context, id int64, delta float64) (*Item, error) {
	item, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.IsArchived() {
		return nil, apperror.NewBusinessRule(apperror.CodeArchived,
			"archived items cannot be adjusted").
			WithDetail("id", id)
	}

	next := item.Quantity + delta
	if next < 0 {
		return nil, apperror.NewInsufficientStock(id, -delta, item.Quantity)
	}

	item.Quantity = next
	item.Touch()
	if err := s.RecordService.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// LowStock returns the non-archived items at or under their threshold.
func (s *Service) LowStock(ctx context.Context) ([]*Item, error) {
	result, err := s.List(ctx, domain.All(false))
	if err != nil {
		return nil, err
	}

	low := make([]*Item, 0)
	for _, item := range result.Items {
		if item.LowStock() {
			low = append(low, item)
		}
	}
	return low, nil
}
