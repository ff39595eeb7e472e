// Package hr manages employees and their leave requests.
package hr

import (
	"context"
	"net/mail"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// Employee represents a staff member.
type Employee struct {
	entity.Record

	Name     string    `db:"name" json:"name"`
	Role     string    `db:"role" json:"role,omitempty"`
	Email    string    `db:"email" json:"email,omitempty"`
	Phone    string    `db:"phone" json:"phone,omitempty"`
	HireDate time.Time `db:"hire_date" json:"hireDate"`
	Active   bool      `db:"active" json:"active"`
}

// NewEmployee creates a new active employee.
func NewEmployee(name string) *Employee {
	e := &Employee{
		Record: entity.NewRecord(),
		Name:   name,
		Active: true,
	}
	e.HireDate = e.CreatedAt
	return e
}

// Validate validates employee data.
func (e *Employee) Validate(ctx context.Context) error {
	if e.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if e.Email != "" {
		if _, err := mail.ParseAddress(e.Email); err != nil {
			return apperror.NewValidation("invalid email address").
				WithDetail("field", "email").
				WithDetail("value", e.Email)
		}
	}
	return nil
}
