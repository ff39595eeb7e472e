// Package projects manages client projects. Interventions reference
// projects by ID only; the project record carries no back references.
package projects

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// Status is the lifecycle status of a project.
type Status string

const (
	StatusPending   Status = "En attente"
	StatusActive    Status = "En cours"
	StatusCompleted Status = "Terminé"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Project represents a client project.
type Project struct {
	entity.Record

	Name        string     `db:"name" json:"name"`
	Client      string     `db:"client" json:"client"`
	Status      Status     `db:"status" json:"status"`
	StartDate   time.Time  `db:"start_date" json:"startDate"`
	EndDate     *time.Time `db:"end_date" json:"endDate,omitempty"`
	Description string     `db:"description" json:"description,omitempty"`
}

// NewProject creates a new pending project.
func NewProject(name, client string) *Project {
	p := &Project{
		Record: entity.NewRecord(),
		Name:   name,
		Client: client,
		Status: StatusPending,
	}
	p.StartDate = p.CreatedAt
	return p
}

// Validate validates project data.
func (p *Project) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if p.Client == "" {
		return apperror.NewValidation("client is required").WithDetail("field", "client")
	}
	if !p.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("value", string(p.Status))
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return apperror.NewValidation("end date must not precede start date").
			WithDetail("startDate", p.StartDate).
			WithDetail("endDate", *p.EndDate)
	}
	return nil
}
