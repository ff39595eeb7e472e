package postgres

import (
	"edr/internal/domain/hr"
	"edr/internal/domain/interventions"
	"edr/internal/domain/inventory"
	"edr/internal/domain/projects"
	"edr/internal/domain/quotes"
	"edr/internal/domain/suppliers"
)

// NewInterventionRepo creates the intervention repository.
func NewInterventionRepo(txm *TxManager, prefix string) *BaseRepo[*interventions.Intervention] {
	return NewBaseRepo(txm, prefix+"interventions",
		[]string{"title", "client", "technician", "material", "description"},
		func() *interventions.Intervention { return &interventions.Intervention{} })
}

// NewQuoteRepo creates the quote repository. Client, issuer, items and
// history live in jsonb columns; pgx maps them through the json codec.
func NewQuoteRepo(txm *TxManager, prefix string) *BaseRepo[*quotes.Quote] {
	return NewBaseRepo(txm, prefix+"quotes",
		[]string{"reference", "notes"},
		func() *quotes.Quote { return &quotes.Quote{} })
}

// NewInventoryRepo creates the inventory repository.
func NewInventoryRepo(txm *TxManager, prefix string) *BaseRepo[*inventory.Item] {
	return NewBaseRepo(txm, prefix+"inventory_items",
		[]string{"reference", "name", "category", "location"},
		func() *inventory.Item { return &inventory.Item{} })
}

// NewSupplierRepo creates the supplier repository.
func NewSupplierRepo(txm *TxManager, prefix string) *BaseRepo[*suppliers.Supplier] {
	return NewBaseRepo(txm, prefix+"suppliers",
		[]string{"name", "contact_name", "email", "category"},
		func() *suppliers.Supplier { return &suppliers.Supplier{} })
}

// NewEmployeeRepo creates the employee repository.
func NewEmployeeRepo(txm *TxManager, prefix string) *BaseRepo[*hr.Employee] {
	return NewBaseRepo(txm, prefix+"employees",
		[]string{"name", "role", "email"},
		func() *hr.Employee { return &hr.Employee{} })
}

// NewLeaveRepo creates the leave request repository.
func NewLeaveRepo(txm *TxManager, prefix string) *BaseRepo[*hr.LeaveRequest] {
	return NewBaseRepo(txm, prefix+"leave_requests",
		[]string{"reason", "status"},
		func() *hr.LeaveRequest { return &hr.LeaveRequest{} })
}

// NewProjectRepo creates the project repository.
func NewProjectRepo(txm *TxManager, prefix string) *BaseRepo[*projects.Project] {
	return NewBaseRepo(txm, prefix+"projects",
		[]string{"name", "client", "description"},
		func() *projects.Project { return &projects.Project{} })
}
