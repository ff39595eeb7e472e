// Package interventions provides the intervention (service ticket) module.
// Interventions track field work for clients: failures, installs,
// maintenance visits, updates.
package interventions

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// Status is the intervention lifecycle state.
// Wire values are the French labels the application has always stored;
// renaming them would break every persisted record and saved filter.
type Status string

const (
	StatusToSchedule Status = "À planifier"
	StatusScheduled  Status = "Planifiée"
	StatusInProgress Status = "En cours"
	StatusWaiting    Status = "En attente"
	StatusCompleted  Status = "Terminée"
	StatusCancelled  Status = "Annulée"
	StatusArchived   Status = "Archivée"
)

// Priority of an intervention.
type Priority string

const (
	PriorityLow      Priority = "Basse"
	PriorityMedium   Priority = "Moyenne"
	PriorityHigh     Priority = "Haute"
	PriorityCritical Priority = "Critique"
)

// Kind is the intervention type.
type Kind string

const (
	KindFailure     Kind = "Panne"
	KindInstall     Kind = "Installation"
	KindMaintenance Kind = "Maintenance"
	KindUpdate      Kind = "Mise à jour"
	KindOther       Kind = "Autre"
)

// Intervention is a tracked piece of field work.
type Intervention struct {
	entity.Record

	// Title is a short summary of the work
	Title string `db:"title" json:"title"`

	// Client is the customer name the work is for
	Client string `db:"client" json:"client"`

	// Technician assigned to the work
	Technician string `db:"technician" json:"technician"`

	Status   Status   `db:"status" json:"status"`
	Priority Priority `db:"priority" json:"priority"`
	Kind     Kind     `db:"kind" json:"type"`

	// Deadline defaults to creation date + 7 days
	Deadline time.Time `db:"deadline" json:"deadline"`

	// ScheduledDate is set when the intervention is planned
	ScheduledDate *time.Time `db:"scheduled_date" json:"scheduledDate,omitempty"`

	// Material concerned by the intervention (equipment reference)
	Material string `db:"material" json:"material,omitempty"`

	Description string `db:"description" json:"description,omitempty"`

	// ProjectID is a weak reference: the project is not an owner
	ProjectID *int64 `db:"project_id" json:"projectId,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`

	Attachments []string `db:"attachments" json:"attachments,omitempty"`
}

// NewIntervention creates an intervention with required fields and defaults.
func NewIntervention(title, client, technician string) *Intervention {
	iv := &Intervention{
		Record:     entity.NewRecord(),
		Title:      title,
		Client:     client,
		Technician: technician,
		Status:     StatusToSchedule,
		Priority:   PriorityMedium,
		Kind:       KindOther,
	}
	iv.Deadline = iv.CreatedAt.Add(7 * 24 * time.Hour)
	return iv
}

// Validate implements entity.Validatable.
func (iv *Intervention) Validate(ctx context.Context) error {
	if iv.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if iv.Client == "" {
		return apperror.NewValidation("client is required").
			WithDetail("field", "client")
	}
	if iv.Technician == "" {
		return apperror.NewValidation("technician is required").
			WithDetail("field", "technician")
	}
	if !iv.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(iv.Status))
	}
	if !iv.Priority.Valid() {
		return apperror.NewValidation("invalid priority").
			WithDetail("field", "priority").
			WithDetail("value", string(iv.Priority))
	}
	if !iv.Kind.Valid() {
		return apperror.NewValidation("invalid type").
			WithDetail("field", "type").
			WithDetail("value", string(iv.Kind))
	}
	return nil
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusToSchedule, StatusScheduled, StatusInProgress, StatusWaiting,
		StatusCompleted, StatusCancelled, StatusArchived:
		return true
	}
	return false
}

// Terminal reports whether no further status change is allowed from s.
// Archived is one-way: there is no un-archive operation.
func (s Status) Terminal() bool {
	return s == StatusArchived
}

// CanTransitionTo reports whether the status machine allows s -> next.
//
//	À planifier → Planifiée → En cours → {En attente ⇄ En cours} → Terminée
//
// Annulée and Archivée are reachable from any non-terminal state.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	switch next {
	case StatusArchived, StatusCancelled:
		return true
	}
	switch s {
	case StatusToSchedule:
		return next == StatusScheduled
	case StatusScheduled:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusWaiting || next == StatusCompleted
	case StatusWaiting:
		return next == StatusInProgress
	case StatusCancelled:
		return false
	case StatusCompleted:
		return false
	}
	return false
}

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

func (k Kind) Valid() bool {
	switch k {
	case KindFailure, KindInstall, KindMaintenance, KindUpdate, KindOther:
		return true
	}
	return false
}
