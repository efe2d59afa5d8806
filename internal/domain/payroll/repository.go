package payroll

import "context"

// PayrollRepository defines data access for payroll records. The store holds a
// unique constraint on (employee_id, period_month, period_year); Create maps a
// violation of it to ErrPayrollRecordAlreadyExists, which is the authoritative
// idempotency signal under concurrent generation.
type PayrollRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Record, error)
	List(ctx context.Context, filter Filter) ([]Record, int64, error)

	// Approve flips the given draft records to approved, stamping approver and
	// timestamp, and returns the rows it actually updated. Ids that are
	// missing or already approved are excluded, not errors.
	Approve(ctx context.Context, ids []string, approvedBy string) ([]Record, error)

	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)
}
