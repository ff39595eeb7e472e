// Package suppliers manages the supplier directory.
package suppliers

import (
	"context"
	"net/mail"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// Supplier represents a supplier contact card.
type Supplier struct {
	entity.Record

	Name        string `db:"name" json:"name"`
	ContactName string `db:"contact_name" json:"contactName,omitempty"`
	Email       string `db:"email" json:"email,omitempty"`
	Phone       string `db:"phone" json:"phone,omitempty"`
	Address     string `db:"address" json:"address,omitempty"`
	Category    string `db:"category" json:"category,omitempty"`
	Active      bool   `db:"active" json:"active"`
	Notes       string `db:"notes" json:"notes,omitempty"`
}

// NewSupplier creates a new active supplier.
func NewSupplier(name string) *Supplier {
	return &Supplier{
		Record: entity.NewRecord(),
		Name:   name,
		Active: true,
	}
}

// Validate validates supplier data.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if s.Email != "" {
		if _, err := mail.ParseAddress(s.Email); err != nil {
			return apperror.NewValidation("invalid email address").
				WithDetail("field", "email").
				WithDetail("value", s.Email)
		}
	}
	return nil
}
