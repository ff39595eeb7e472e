package quotes

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	appctx "edr/internal/core/context"
	"edr/internal/core/numerator"
	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// DefaultValidity is the expiration delay applied when settings do not
// provide one.
const DefaultValidity = 30 * 24 * time.Hour

// IssuerSource supplies the company block printed on new quotes.
// The settings module implements it.
type IssuerSource interface {
	QuoteIssuer(ctx context.Context) (Issuer, time.Duration, error)
}

// Service provides business logic for quotes.
type Service struct {
	*domain.RecordService[*Quote]
	repo    Repository
	refs    numerator.Generator
	issuers IssuerSource
}

// NewService creates a new quote service. issuers may be nil; new quotes
// then carry an empty issuer block and the default validity.
func NewService(repo Repository, txm tx.Manager, trail audit.Trail, refs numerator.Generator, issuers IssuerSource) *Service {
	base := domain.NewRecordService(domain.RecordServiceConfig[*Quote]{
		Repo:       repo,
		TxManager:  txm,
		Trail:      trail,
		EntityName: "quote",
	})

	svc := &Service{
		RecordService: base,
		repo:          repo,
		refs:          refs,
		issuers:       issuers,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)

	return svc
}

// prepareForCreate assigns the reference, the issuer block and the
// initial history entry.
func (s *Service) prepareForCreate(ctx context.Context, q *Quote) error {
	now := time.Now().UTC()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
		q.UpdatedAt = now
	}
	if q.Status == "" {
		q.Status = StatusDraft
	}

	validity := DefaultValidity
	if s.issuers != nil && q.Issuer.Name == "" {
		issuer, v, err := s.issuers.QuoteIssuer(ctx)
		if err == nil {
			q.Issuer = issuer
			if v > 0 {
				validity = v
			}
		}
	}
	if q.ExpirationDate.IsZero() {
		q.ExpirationDate = q.CreatedAt.Add(validity)
	}

	if q.Reference == "" && s.refs != nil {
		ref, err := s.refs.NextReference(ctx, numerator.DefaultConfig("DEV"), q.CreatedAt)
		if err != nil {
			return apperror.NewInternal(err).WithDetail("step", "quote reference")
		}
		q.Reference = ref
	}

	q.Recalculate()
	q.RecordEvent("Quote created", appctx.ActingUser(ctx))
	return nil
}

// load fetches a quote and rejects mutations on archived ones.
func (s *Service) load(ctx context.Context, id int64) (*Quote, error) {
	q, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.IsArchived() {
		return nil, apperror.NewBusinessRule(apperror.CodeArchived,
			"archived quotes cannot be modified").
			WithDetail("id", id)
	}
	return q, nil
}

// save persists a fully assembled quote. Totals, items and history go
// to the store as one update, so no partial state is observable.
func (s *Service) save(ctx context.Context, q *Quote) error {
	q.Touch()
	return s.RecordService.Update(ctx, q)
}

// Update persists a quote edit. Archived quotes are immutable, a
// status carried on the payload must be a legal transition from the
// stored one, and aggregates are recomputed from the item list so
// stored totals never drift from the lines.
func (s *Service) Update(ctx context.Context, q *Quote) error {
	current, err := s.load(ctx, q.ID)
	if err != nil {
		return err
	}
	if q.Status != "" && !current.Status.CanTransitionTo(q.Status) {
		return apperror.NewInvalidTransition("quote", string(current.Status), string(q.Status))
	}
	if q.Status != "" && q.Status != current.Status {
		q.RecordEvent("Status changed to "+string(q.Status), appctx.ActingUser(ctx))
	}
	q.Recalculate()
	return s.save(ctx, q)
}

// AddItem appends a line to the quote and persists the recomputed state.
func (s *Service) AddItem(ctx context.Context, id int64, item Item) (*Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	q.AddItem(item, appctx.ActingUser(ctx))
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateItem replaces a line by ID.
func (s *Service) UpdateItem(ctx context.Context, id int64, item Item) (*Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.UpdateItem(item, appctx.ActingUser(ctx)) {
		return nil, apperror.NewNotFound("quote item", item.ID).
			WithDetail("quoteId", id)
	}
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// RemoveItem drops a line by ID. Removing the last item resets all
// aggregates to zero.
func (s *Service) RemoveItem(ctx context.Context, id int64, itemID string) (*Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.RemoveItem(itemID, appctx.ActingUser(ctx)) {
		return nil, apperror.NewNotFound("quote item", itemID).
			WithDetail("quoteId", id)
	}
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ChangeStatus moves a quote through its lifecycle and logs the change.
func (s *Service) ChangeStatus(ctx context.Context, id int64, next Status) (*Quote, error) {
	q, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !next.Valid() {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("value", string(next))
	}
	if !q.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransition("quote", string(q.Status), string(next))
	}
	if q.Status != next {
		q.Status = next
		q.RecordEvent("Status changed to "+string(next), appctx.ActingUser(ctx))
	}
	if err := s.save(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}
