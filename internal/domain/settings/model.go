// Package settings holds the company profile used across the
// application, stored as a single record under a fixed key.
package settings

import (
	"context"
	"net/mail"
	"time"

	"edr/internal/core/apperror"
)

// Key is the fixed storage key of the settings record.
const Key = "app_config"

// Settings is the company profile. It doubles as the issuer block
// printed on quotes.
type Settings struct {
	CompanyName       string    `db:"company_name" json:"companyName"`
	Address           string    `db:"address" json:"address,omitempty"`
	Phone             string    `db:"phone" json:"phone,omitempty"`
	Email             string    `db:"email" json:"email,omitempty"`
	SIRET             string    `db:"siret" json:"siret,omitempty"`
	DefaultTaxRate    float64   `db:"default_tax_rate" json:"defaultTaxRate"`
	QuoteValidityDays int       `db:"quote_validity_days" json:"quoteValidityDays"`
	UpdatedAt         time.Time `db:"updated_at" json:"updatedAt"`
	Version           int       `db:"version" json:"version"`
}

// Defaults returns the settings applied before any update.
func Defaults() *Settings {
	return &Settings{
		CompanyName:       "EDR Solution",
		DefaultTaxRate:    20,
		QuoteValidityDays: 30,
		UpdatedAt:         time.Now().UTC(),
		Version:           1,
	}
}

// Validate validates the profile.
func (s *Settings) Validate(ctx context.Context) error {
	if s.CompanyName == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "companyName")
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return apperror.NewValidation("invalid email address").
				WithDetail("field", "email").
				WithDetail("value", s.Email)
		}
	}
	if s.DefaultTaxRate < 0 || s.DefaultTaxRate > 100 {
		return apperror.NewValidation("tax rate must be between 0 and 100").
			WithDetail("field", "defaultTaxRate")
	}
	if s.QuoteValidityDays <= 0 {
		return apperror.NewValidation("quote validity must be positive").
			WithDetail("field", "quoteValidityDays")
	}
	return nil
}
