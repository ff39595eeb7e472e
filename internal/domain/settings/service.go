package settings

import (
	"context"
	"encoding/json"
	"time"

	"edr/internal/core/apperror"
	appctx "edr/internal/core/context"
	"edr/internal/domain/audit"
	"edr/internal/domain/quotes"
	"edr/pkg/logger"
)

// Store persists the single settings record.
type Store interface {
	// Get loads the record. Implementations return a not-found
	// apperror when nothing was saved yet.
	Get(ctx context.Context) (*Settings, error)

	// Save replaces the record.
	Save(ctx context.Context, s *Settings) error
}

// Service provides access to the company profile.
type Service struct {
	store Store
	trail audit.Trail
}

// NewService creates a new settings service.
func NewService(store Store, trail audit.Trail) *Service {
	if trail == nil {
		trail = audit.NopTrail{}
	}
	return &Service{store: store, trail: trail}
}

// Get returns the saved profile, or the defaults when nothing was
// saved yet.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	cfg, err := s.store.Get(ctx)
	if err != nil {
		if apperror.IsNotFound(err) {
			return Defaults(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Update validates and replaces the profile.
func (s *Service) Update(ctx context.Context, cfg *Settings) error {
	if err := cfg.Validate(ctx); err != nil {
		return err
	}
	cfg.UpdatedAt = time.Now().UTC()
	cfg.Version++

	if err := s.store.Save(ctx, cfg); err != nil {
		return err
	}

	changes, _ := json.Marshal(cfg)
	if err := s.trail.Record(ctx, audit.Entry{
		Entity:  "settings",
		Action:  audit.ActionUpdate,
		User:    appctx.ActingUser(ctx),
		At:      cfg.UpdatedAt,
		Changes: changes,
	}); err != nil {
		logger.Warn(ctx, "audit record failed", "entity", "settings", "error", err)
	}
	return nil
}

// QuoteIssuer implements quotes.IssuerSource from the saved profile.
func (s *Service) QuoteIssuer(ctx context.Context) (quotes.Issuer, time.Duration, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return quotes.Issuer{}, 0, err
	}
	issuer := quotes.Issuer{
		Name:    cfg.CompanyName,
		Address: cfg.Address,
		Phone:   cfg.Phone,
		Email:   cfg.Email,
		SIRET:   cfg.SIRET,
	}
	return issuer, time.Duration(cfg.QuoteValidityDays) * 24 * time.Hour, nil
}
