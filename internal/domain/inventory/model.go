// Package inventory manages stock items and their levels.
package inventory

import (
	"context"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// Item represents a stock item.
type Item struct {
	entity.Record

	Reference   string  `db:"reference" json:"reference"`
	Name        string  `db:"name" json:"name"`
	Category    string  `db:"category" json:"category"`
	Quantity    float64 `db:"quantity" json:"quantity"`
	MinQuantity float64 `db:"min_quantity" json:"minQuantity"`
	Unit        string  `db:"unit" json:"unit"`
	UnitPrice   float64 `db:"unit_price" json:"unitPrice"`
	SupplierID  *int64  `db:"supplier_id" json:"supplierId,omitempty"`
	Location    string  `db:"location" json:"location,omitempty"`
	Description string  `db:"description" json:"description,omitempty"`
}

// NewItem creates a new stock item.
func NewItem(name string) *Item {
	return &Item{
		Record: entity.NewRecord(),
		Name:   name,
		Unit:   "pièce",
	}
}

// Validate validates item data.
func (i *Item) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if i.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if i.MinQuantity < 0 {
		return apperror.NewValidation("min quantity cannot be negative").
			WithDetail("field", "minQuantity")
	}
	if i.UnitPrice < 0 {
		return apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice")
	}
	return nil
}

// LowStock reports whether the item is at or under its threshold.
func (i *Item) LowStock() bool {
	return i.Quantity <= i.MinQuantity
}
