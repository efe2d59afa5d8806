package adjustment

import "context"

type AdjustmentRepository interface {
	ListBonuses(ctx context.Context, employeeIDs []string, month, year int) ([]BonusRecord, error)
	ListDeductions(ctx context.Context, employeeIDs []string, month, year int) ([]DeductionRecord, error)
}
