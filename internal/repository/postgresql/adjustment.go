package postgresql

import (
	"context"
	"fmt"

	"github.com/arkalabs/payroll-engine-go/internal/domain/adjustment"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
)

type adjustmentRepository struct {
	db *database.DB
}

func NewAdjustmentRepository(db *database.DB) adjustment.AdjustmentRepository {
	return &adjustmentRepository{db: db}
}

func (r *adjustmentRepository) ListBonuses(ctx context.Context, employeeIDs []string, month, year int) ([]adjustment.BonusRecord, error) {
	query := `
		SELECT id, employee_id, period_month, period_year, amount, category, description, created_at
		FROM bonus_records
		WHERE employee_id = ANY($1) AND period_month = $2 AND period_year = $3
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list bonus records: %w", err)
	}
	defer rows.Close()

	var records []adjustment.BonusRecord
	for rows.Next() {
		var rec adjustment.BonusRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.Amount, &rec.Category, &rec.Description, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bonus record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *adjustmentRepository) ListDeductions(ctx context.Context, employeeIDs []string, month, year int) ([]adjustment.DeductionRecord, error) {
	query := `
		SELECT id, employee_id, period_month, period_year, amount, category, description, created_at
		FROM deduction_records
		WHERE employee_id = ANY($1) AND period_month = $2 AND period_year = $3
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list deduction records: %w", err)
	}
	defer rows.Close()

	var records []adjustment.DeductionRecord
	for rows.Next() {
		var rec adjustment.DeductionRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
			&rec.Amount, &rec.Category, &rec.Description, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deduction record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
