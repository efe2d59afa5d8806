package payroll

import "context"

type PayrollService interface {
	// Generate runs the calculator over the requested employee set for one
	// period and persists draft records, collecting per-employee conflicts
	// instead of aborting the batch.
	Generate(ctx context.Context, req GeneratePayrollRequest) (GeneratePayrollResponse, error)

	// CalculateOnly is the dry-run variant: it computes a single employee's
	// payroll without persisting and without checking for an existing record.
	CalculateOnly(ctx context.Context, employeeID string, month, year int) (Computation, error)

	// Approve transitions draft records to approved. One-way.
	Approve(ctx context.Context, req ApprovePayrollRequest) (ApprovePayrollResponse, error)

	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter Filter) (ListRecordResponse, error)
	GetSummary(ctx context.Context, month, year int) (SummaryResponse, error)
}
