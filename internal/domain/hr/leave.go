package hr

import (
	"context"
	"time"

	"edr/internal/core/apperror"
	"edr/internal/core/entity"
)

// LeaveStatus is the lifecycle status of a leave request.
// Values are the labels shown in the client.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "En attente"
	LeaveApproved LeaveStatus = "Approuvée"
	LeaveRefused  LeaveStatus = "Refusée"
)

// Valid reports whether s is a known status.
func (s LeaveStatus) Valid() bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRefused:
		return true
	}
	return false
}

// CanTransitionTo reports whether the transition is allowed.
// Only pending requests can be decided, and decisions are final.
func (s LeaveStatus) CanTransitionTo(next LeaveStatus) bool {
	if s == next {
		return true
	}
	return s == LeavePending && (next == LeaveApproved || next == LeaveRefused)
}

// LeaveRequest represents a leave request of an employee.
type LeaveRequest struct {
	entity.Record

	EmployeeID int64       `db:"employee_id" json:"employeeId"`
	From       time.Time   `db:"from_date" json:"from"`
	To         time.Time   `db:"to_date" json:"to"`
	Reason     string      `db:"reason" json:"reason,omitempty"`
	Status     LeaveStatus `db:"status" json:"status"`
	DecidedBy  string      `db:"decided_by" json:"decidedBy,omitempty"`
	DecidedAt  *time.Time  `db:"decided_at" json:"decidedAt,omitempty"`
}

// NewLeaveRequest creates a pending leave request.
func NewLeaveRequest(employeeID int64, from, to time.Time) *LeaveRequest {
	return &LeaveRequest{
		Record:     entity.NewRecord(),
		EmployeeID: employeeID,
		From:       from,
		To:         to,
		Status:     LeavePending,
	}
}

// Validate validates leave request data.
func (r *LeaveRequest) Validate(ctx context.Context) error {
	if r.EmployeeID <= 0 {
		return apperror.NewValidation("employee is required").
			WithDetail("field", "employeeId")
	}
	if r.From.IsZero() || r.To.IsZero() {
		return apperror.NewValidation("from and to dates are required")
	}
	if r.To.Before(r.From) {
		return apperror.NewValidation("end date must not precede start date").
			WithDetail("from", r.From).
			WithDetail("to", r.To)
	}
	if !r.Status.Valid() {
		return apperror.NewValidation("invalid status").
			WithDetail("value", string(r.Status))
	}
	return nil
}

// decide stamps a final decision on the request.
func (r *LeaveRequest) decide(next LeaveStatus, user string) {
	r.Status = next
	r.DecidedBy = user
	now := time.Now().UTC()
	r.DecidedAt = &now
}
