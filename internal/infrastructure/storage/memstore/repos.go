package memstore

import (
	"strings"

	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/suppliers"
)

func contains(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// NewInterventionRepo creates the in-memory intervention repository.
func NewInterventionRepo() *Collection[*interventions.Intervention] {
	return NewCollection(
		func(iv *interventions.Intervention) *interventions.Intervention {
			cp := *iv
			if iv.ScheduledDate != nil {
				d := *iv.ScheduledDate
				cp.ScheduledDate = &d
			}
			if iv.ProjectID != nil {
				p := *iv.ProjectID
				cp.ProjectID = &p
			}
			cp.Attachments = append([]string(nil), iv.Attachments...)
			return &cp
		},
		func(iv *interventions.Intervention, term string) bool {
			return contains(term, iv.Title, iv.Client, iv.Technician, iv.Material, iv.Description)
		},
	)
}

// NewQuoteRepo creates the in-memory quote repository. Items and
// history are copied so returned quotes own their slices.
func NewQuoteRepo() *Collection[*quotes.Quote] {
	return NewCollection(
		func(q *quotes.Quote) *quotes.Quote {
			cp := *q
			cp.Items = append([]quotes.Item(nil), q.Items...)
			cp.History = append([]quotes.HistoryEntry(nil), q.History...)
			return &cp
		},
		func(q *quotes.Quote, term string) bool {
			return contains(term, q.Reference, q.Client.Name, q.Notes)
		},
	)
}

// NewInventoryRepo creates the in-memory inventory repository.
func NewInventoryRepo() *Collection[*inventory.Item] {
	return NewCollection(
		func(item *inventory.Item) *inventory.Item {
			cp := *item
			if item.SupplierID != nil {
				s := *item.SupplierID
				cp.SupplierID = &s
			}
			return &cp
		},
		func(item *inventory.Item, term string) bool {
			return contains(term, item.Reference, item.Name, item.Category, item.Location)
		},
	)
}

// NewSupplierRepo creates the in-memory supplier repository.
func NewSupplierRepo() *Collection[*suppliers.Supplier] {
	return NewCollection(
		func(s *suppliers.Supplier) *suppliers.Supplier {
			cp := *s
			return &cp
		},
		func(s *suppliers.Supplier, term string) bool {
			return contains(term, s.Name, s.ContactName, s.Email, s.Category)
		},
	)
}

// NewEmployeeRepo creates the in-memory employee repository.
func NewEmployeeRepo() *Collection[*hr.Employee] {
	return NewCollection(
		func(e *hr.Employee) *hr.Employee {
			cp := *e
			return &cp
		},
		func(e *hr.Employee, term string) bool {
			return contains(term, e.Name, e.Role, e.Email)
		},
	)
}

// NewLeaveRepo creates the in-memory leave request repository.
func NewLeaveRepo() *Collection[*hr.LeaveRequest] {
	return NewCollection(
		func(r *hr.LeaveRequest) *hr.LeaveRequest {
			cp := *r
			if r.DecidedAt != nil {
				d := *r.DecidedAt
				cp.DecidedAt = &d
			}
			return &cp
		},
		func(r *hr.LeaveRequest, term string) bool {
			return contains(term, r.Reason, string(r.Status))
		},
	)
}

// NewProjectRepo creates the in-memory project repository.
func NewProjectRepo() *Collection[*projects.Project] {
	return NewCollection(
		func(p *projects.Project) *projects.Project {
			cp := *p
			if p.EndDate != nil {
				d := *p.EndDate
				cp.EndDate = &d
			}
			return &cp
		},
		func(p *projects.Project, term string) bool {
			return contains(term, p.Name, p.Client, p.Description)
		},
	)
}
