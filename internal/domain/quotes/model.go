// Package quotes provides the quote (devis) module: line items, derived
// totals, an append-only history log and the quote status lifecycle.
package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
	"edr/internal/core/types"
)

// Status is the quote lifecycle state. Wire values are the French
// labels stored by the application since its first release.
type Status string

const (
	StatusDraft    Status = "Brouillon"
	StatusPending  Status = "En attente"
	StatusSent     Status = "Envoyé"
	StatusApproved Status = "Approuvé"
	StatusRejected Status = "Rejeté"
	StatusExpired  Status = "Expiré"
)

// ItemKind categorizes a quote line.
type ItemKind string

const (
	ItemProduct ItemKind = "Produit"
	ItemService ItemKind = "Service"
	ItemPackage ItemKind = "Forfait"
)

// Item is one quote line. Total is derived, never set directly.
type Item struct {
	ID          string   `json:"id"`
	Kind        ItemKind `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	UnitPrice   float64  `json:"unitPrice"`
	Quantity    float64  `json:"quantity"`

	// Discount is a percentage applied to this line only
	Discount float64 `json:"discount,omitempty"`

	// TaxRate is a percentage (e.g. 20 for 20% VAT)
	TaxRate float64 `json:"taxRate"`

	// Total = unitPrice*quantity*(1-discount/100)*(1+taxRate/100), rounded to 2 decimals
	Total float64 `json:"total"`
}

// HistoryEntry is one line of the append-only quote log.
type HistoryEntry struct {
	ID     string    `json:"id"`
	Date   time.Time `json:"date"`
	Action string    `json:"action"`
	User   string    `json:"user"`
}

// Contact is the quote recipient block.
type Contact struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Issuer is the company block printed on the quote, sourced from settings.
type Issuer struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	SIRET   string `json:"siret,omitempty"`
}

// Quote is a commercial proposal. It exclusively owns its item list.
type Quote struct {
	entity.Record

	// Reference is assigned from the yearly sequence (DEV-2026-0001)
	Reference string `db:"reference" json:"reference"`

	ExpirationDate time.Time `db:"expiration_date" json:"expirationDate"`

	Status Status `db:"status" json:"status"`

	Client Contact `db:"client" json:"client"`
	Issuer Issuer  `db:"issuer" json:"issuer"`

	// Items is the ordered line list. Mutate only through AddItem,
	// UpdateItem and RemoveItem so totals and history stay consistent.
	Items []Item `db:"items" json:"items"`

	// Derived aggregates. Subtotal and TaxTotal are both computed from
	// the pre-discount line amounts; see Recalculate.
	Subtotal float64 `db:"subtotal" json:"subtotal"`
	TaxTotal float64 `db:"tax_total" json:"taxTotal"`
	Total    float64 `db:"total" json:"total"`

	Notes string `db:"notes" json:"notes,omitempty"`
	Terms string `db:"terms" json:"terms,omitempty"`

	// Discount is a display-only global percentage carried on the
	// document; line discounts are the ones entering the computation.
	Discount float64 `db:"discount" json:"discount,omitempty"`

	// History is append-only: one entry per item mutation or status change
	History []HistoryEntry `db:"history" json:"history"`
}

// NewQuote creates a draft quote for a client.
func NewQuote(client Contact, issuer Issuer, validity time.Duration) *Quote {
	q := &Quote{
		Record: entity.NewRecord(),
		Status: StatusDraft,
		Client: client,
		Issuer: issuer,
		Items:  make([]Item, 0),
	}
	// Zero validity is left for the create hook to resolve from settings.
	if validity > 0 {
		q.ExpirationDate = q.CreatedAt.Add(validity)
	}
	return q
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if q.Client.Name == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "client.name")
	}
	if !q.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(q.Status))
	}
	for i, item := range q.Items {
		if item.Name == "" {
			return apperror.NewValidation("item name is required").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if item.Quantity <= 0 {
			return apperror.NewValidation("item quantity must be positive").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if item.UnitPrice < 0 {
			return apperror.NewValidation("item unit price cannot be negative").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if item.Discount < 0 || item.Discount > 100 {
			return apperror.NewValidation("item discount must be between 0 and 100").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
		if item.TaxRate < 0 {
			return apperror.NewValidation("item tax rate cannot be negative").
				WithDetail("field", "items").
				WithDetail("index", i)
		}
	}
	return nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusSent, StatusApproved, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows s -> next.
//
//	Brouillon → Envoyé → {Approuvé | Rejeté}
//
// En attente and Expiré are reachable once the quote has been sent.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	switch s {
	case StatusDraft:
		return next == StatusSent
	case StatusSent:
		return next == StatusApproved || next == StatusRejected ||
			next == StatusPending || next == StatusExpired
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusExpired
	case StatusApproved, StatusRejected, StatusExpired:
		return false
	}
	return false
}

// --- Item mutations ---
// Each mutation applies the change, recomputes the aggregates and
// appends exactly one history entry. Callers persist the quote as one
// operation, so no partial state is ever observable.

// AddItem appends a line and recomputes totals.
func (q *Quote) AddItem(item Item, user string) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Total = lineTotal(item)
	q.Items = append(q.Items, item)
	q.Recalculate()
	q.appendHistory("Added item: "+item.Name, user)
}

// UpdateItem replaces the line with the same ID and recomputes totals.
func (q *Quote) UpdateItem(item Item, user string) bool {
	for i := range q.Items {
		if q.Items[i].ID == item.ID {
			item.Total = lineTotal(item)
			q.Items[i] = item
			q.Recalculate()
			q.appendHistory("Updated item: "+item.Name, user)
			return true
		}
	}
	return false
}

// RemoveItem drops the line with the given ID and recomputes totals.
func (q *Quote) RemoveItem(itemID, user string) bool {
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			name := q.Items[i].Name
			q.Items = append(q.Items[:i], q.Items[i+1:]...)
			q.Recalculate()
			q.appendHistory("Removed item: "+name, user)
			return true
		}
	}
	return false
}

// Recalculate recomputes the derived aggregates from the current items.
//
// Subtotal sums the pre-discount, pre-tax line amounts. TaxTotal applies
// each line's tax rate to the pre-discount amount as well, while the
// per-line Total applies tax after the discount. The asymmetry is the
// documented application behavior; changing it would alter every
// existing quote, so it stays until product decides otherwise.
func (q *Quote) Recalculate() {
	subtotal := types.Zero()
	taxTotal := types.Zero()
	for i := range q.Items {
		q.Items[i].Total = lineTotal(q.Items[i])

		base := types.NewMoney(q.Items[i].UnitPrice).Mul(types.NewMoney(q.Items[i].Quantity))
		subtotal = subtotal.Add(base)
		taxTotal = taxTotal.Add(base.Mul(types.Percent(q.Items[i].TaxRate)))
	}
	subtotal = types.Round2(subtotal)
	taxTotal = types.Round2(taxTotal)

	q.Subtotal = types.Float64(subtotal)
	q.TaxTotal = types.Float64(taxTotal)
	q.Total = types.Float64(types.Round2(subtotal.Add(taxTotal)))
}

// lineTotal computes a line's total: discount first, then tax, rounded
// to 2 decimals.
func lineTotal(item Item) float64 {
	base := types.NewMoney(item.UnitPrice).Mul(types.NewMoney(item.Quantity))
	discounted := base.Mul(types.NewMoney(1).Sub(types.Percent(item.Discount)))
	taxed := discounted.Mul(types.NewMoney(1).Add(types.Percent(item.TaxRate)))
	return types.Float64(types.Round2(taxed))
}

// appendHistory adds one entry to the append-only log.
func (q *Quote) appendHistory(action, user string) {
	q.History = append(q.History, HistoryEntry{
		ID:     uuid.New().String(),
		Date:   time.Now().UTC(),
		Action: action,
		User:   user,
	})
}

// RecordEvent appends a history entry for non-item events (creation,
// status changes). Exposed for the service layer.
func (q *Quote) RecordEvent(action, user string) {
	q.appendHistory(action, user)
}
