package hr

import (
	"context"

	"edr/internal/core/apperror"
	appctx "edr/internal/core/context"
	"edr/internal/core/tx"
	"edr/internal/domain"
	"edr/internal/domain/audit"
)

// EmployeeRepository persists employees.
type EmployeeRepository = domain.Repository[*Employee]

// LeaveRepository persists leave requests.
type LeaveRepository = domain.Repository[*LeaveRequest]

// EmployeeService provides business logic for employees.
type EmployeeService struct {
	*domain.RecordService[*Employee]
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(repo EmployeeRepository, txm tx.Manager, trail audit.Trail) *EmployeeService {
	return &EmployeeService{
		RecordService: domain.NewRecordService(domain.RecordServiceConfig[*Employee]{
			Repo:       repo,
			TxManager:  txm,
			Trail:      trail,
			EntityName: "employee",
		}),
	}
}

// LeaveService provides business logic for leave requests.
type LeaveService struct {
	*domain.RecordService[*LeaveRequest]
	employees EmployeeRepository
}

// NewLeaveService creates a new leave request service. Requests are
// checked against the employee directory on creation.
func NewLeaveService(repo LeaveRepository, employees EmployeeRepository, txm tx.Manager, trail audit.Trail) *LeaveService {
	base := domain.NewRecordService(domain.RecordServiceConfig[*LeaveRequest]{
		Repo:       repo,
		TxManager:  txm,
		Trail:      trail,
		EntityName: "leave request",
	})

	svc := &LeaveService{RecordService: base, employees: employees}

	base.Hooks().OnBeforeCreate(func(ctx context.Context, r *LeaveRequest) error {
		if r.Status == "" {
			r.Status = LeavePending
		}
		if svc.employees == nil {
			return nil
		}
		ok, err := svc.employees.Exists(ctx, r.EmployeeID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewValidation("unknown employee").
				WithDetail("employeeId", r.EmployeeID)
		}
		return nil
	})

	return svc
}

// Update replaces the base Update with decision guards. Dates and the
// reason can be edited while the request is pending; once decided the
// request is immutable, and decisions themselves go through Approve
// and Reject so the decision stamp is always set.
func (s *LeaveService) Update(ctx context.Context, r *LeaveRequest) error {
	current, err := s.GetByID(ctx, r.ID)
	if err != nil {
		return err
	}
	if current.IsArchived() {
		return apperror.NewBusinessRule(apperror.CodeArchived,
			"archived leave requests cannot be modified").
			WithDetail("id", r.ID)
	}
	if current.Status != LeavePending {
		return apperror.NewInvalidTransition("leave request",
			string(current.Status), string(r.Status))
	}
	if r.Status != "" && r.Status != LeavePending {
		return apperror.NewInvalidTransition("leave request",
			string(current.Status), string(r.Status))
	}
	r.Touch()
	return s.RecordService.Update(ctx, r)
}

// Approve approves a pending leave request.
func (s *LeaveService) Approve(ctx context.Context, id int64) (*LeaveRequest, error) {
	return s.transition(ctx, id, LeaveApproved)
}

// Reject refuses a pending leave request.
func (s *LeaveService) Reject(ctx context.Context, id int64) (*LeaveRequest, error) {
	return s.transition(ctx, id, LeaveRefused)
}

func (s *LeaveService) transition(ctx context.Context, id int64, next LeaveStatus) (*LeaveRequest, error) {
	r, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.IsArchived() {
		return nil, apperror.NewBusinessRule(apperror.CodeArchived,
			"archived leave requests cannot be modified").
			WithDetail("id", id)
	}
	if !r.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransition("leave request", string(r.Status), string(next))
	}
	if r.Status != next {
		r.decide(next, appctx.ActingUser(ctx))
	}
	r.Touch()
	if err := s.RecordService.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
