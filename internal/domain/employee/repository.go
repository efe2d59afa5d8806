package employee

import "context"

// EmployeeRepository is read-only from the payroll engine's point of view;
// employee records are owned by the employee-management service.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
}
