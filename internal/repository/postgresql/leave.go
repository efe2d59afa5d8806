package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/arkalabs/payroll-engine-go/internal/domain/leave"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

func (r *leaveRepository) ListApprovedOverlapping(ctx context.Context, employeeIDs []string, from, to time.Time) ([]leave.Record, error) {
	query := `
		SELECT id, employee_id, leave_type, start_date, end_date, days_count, status, reason, created_at, updated_at
		FROM leave_records
		WHERE employee_id = ANY($1)
			AND status = 'approved'
			AND (start_date BETWEEN $2 AND $3 OR end_date BETWEEN $2 AND $3)
		ORDER BY start_date
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		var rec leave.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Type, &rec.StartDate, &rec.EndDate,
			&rec.DaysCount, &rec.Status, &rec.Reason, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *leaveRepository) GetBalances(ctx context.Context, employeeIDs []string, year int) (map[string]leave.Balance, error) {
	query := `
		SELECT id, employee_id, year, annual_total, annual_used,
			   sick_total, sick_used, casual_total, casual_used
		FROM leave_balances
		WHERE employee_id = ANY($1) AND year = $2
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, year)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[string]leave.Balance)
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.ID, &b.EmployeeID, &b.Year, &b.AnnualTotal, &b.AnnualUsed,
			&b.SickTotal, &b.SickUsed, &b.CasualTotal, &b.CasualUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances[b.EmployeeID] = b
	}

	return balances, nil
}
