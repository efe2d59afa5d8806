package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const payrollColumns = `
	pr.id, pr.employee_id, pr.period_month, pr.period_year, pr.base_salary,
	pr.total_bonuses, pr.attendance_deduction, pr.leave_deduction, pr.manual_deductions,
	pr.total_deductions, pr.gross_salary, pr.net_salary, pr.notes, pr.status,
	pr.approved_by, pr.approved_at, pr.created_at, pr.updated_at
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
		&rec.TotalBonuses, &rec.AttendanceDeduction, &rec.LeaveDeduction, &rec.ManualDeductions,
		&rec.TotalDeductions, &rec.GrossSalary, &rec.NetSalary, &rec.Notes, &rec.Status,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// isUniqueViolation reports whether err is a violation of the
// (employee_id, period_month, period_year) unique constraint. That constraint
// is the source of truth for idempotency under concurrent generation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uk_payroll_employee_period"
	}
	return false
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	query := `
		INSERT INTO payroll_records (
			id, employee_id, period_month, period_year, base_salary,
			total_bonuses, attendance_deduction, leave_deduction, manual_deductions,
			total_deductions, gross_salary, net_salary, notes, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + payrollColumnsBare

	rec, err := scanPayrollRecord(r.db.QueryRow(ctx, query,
		uuid.NewString(), record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.BaseSalary,
		record.TotalBonuses, record.AttendanceDeduction, record.LeaveDeduction, record.ManualDeductions,
		record.TotalDeductions, record.GrossSalary, record.NetSalary, record.Notes, record.Status,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Record{}, payroll.ErrPayrollRecordAlreadyExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.Record, error) {
	query := `
		SELECT ` + payrollColumns + `, e.full_name AS employee_name, e.employee_code
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1
	`

	var rec payroll.Record
	err := r.db.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
		&rec.TotalBonuses, &rec.AttendanceDeduction, &rec.LeaveDeduction, &rec.ManualDeductions,
		&rec.TotalDeductions, &rec.GrossSalary, &rec.NetSalary, &rec.Notes, &rec.Status,
		&rec.ApprovedBy, &rec.ApprovedAt, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName, &rec.EmployeeCode,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (payroll.Record, error) {
	query := `
		SELECT ` + payrollColumns + `
		FROM payroll_records pr
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3
	`

	rec, err := scanPayrollRecord(r.db.QueryRow(ctx, query, employeeID, month, year))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.Record, int64, error) {
	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	// Count query
	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	// Sort
	sortColumn := "pr.created_at"
	if filter.SortBy != "" {
		allowedColumns := map[string]string{
			"created_at":    "pr.created_at",
			"period":        "pr.period_year DESC, pr.period_month",
			"employee_name": "e.full_name",
			"net_salary":    "pr.net_salary",
		}
		if col, ok := allowedColumns[filter.SortBy]; ok {
			sortColumn = col
		}
	}
	sortOrder := "DESC"
	if filter.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	// Pagination
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT `+payrollColumns+`, e.full_name AS employee_name, e.employee_code
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, baseQuery, sortColumn, sortOrder, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := r.db.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var rec payroll.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear, &rec.BaseSalary,
			&rec.TotalBonuses, &rec.AttendanceDeduction, &rec.LeaveDeduction, &rec.ManualDeductions,
			&rec.TotalDeductions, &rec.GrossSalary, &rec.NetSalary, &rec.Notes, &rec.Status,
			&rec.ApprovedBy, &rec.ApprovedAt, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.EmployeeName, &rec.EmployeeCode,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) Approve(ctx context.Context, ids []string, approvedBy string) ([]payroll.Record, error) {
	// Only drafts transition; already-approved or unknown ids simply don't
	// come back in the result set.
	query := `
		UPDATE payroll_records pr
		SET status = 'approved', approved_by = $1, approved_at = NOW(), updated_at = NOW()
		WHERE pr.id = ANY($2) AND pr.status = 'draft'
		RETURNING ` + payrollColumnsBare

	rows, err := r.db.Query(ctx, query, approvedBy, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to approve payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approved payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, month, year int) (payroll.SummaryResponse, error) {
	query := `
		SELECT
			COUNT(*) AS total_employees,
			COALESCE(SUM(base_salary), 0) AS total_base_salary,
			COALESCE(SUM(total_bonuses), 0) AS total_bonuses,
			COALESCE(SUM(total_deductions), 0) AS total_deductions,
			COALESCE(SUM(gross_salary), 0) AS total_gross_salary,
			COALESCE(SUM(net_salary), 0) AS total_net_salary,
			COUNT(*) FILTER (WHERE status = 'draft') AS draft_count,
			COUNT(*) FILTER (WHERE status = 'approved') AS approved_count
		FROM payroll_records
		WHERE period_month = $1 AND period_year = $2
	`

	var summary payroll.SummaryResponse
	err := r.db.QueryRow(ctx, query, month, year).Scan(
		&summary.TotalEmployees, &summary.TotalBaseSalary, &summary.TotalBonuses,
		&summary.TotalDeductions, &summary.TotalGross, &summary.TotalNet,
		&summary.DraftCount, &summary.ApprovedCount,
	)
	if err != nil {
		return payroll.SummaryResponse{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	summary.PeriodMonth = month
	summary.PeriodYear = year

	return summary, nil
}

// payrollColumnsBare is payrollColumns without the table alias, for
// INSERT/UPDATE ... RETURNING clauses.
const payrollColumnsBare = `
	id, employee_id, period_month, period_year, base_salary,
	total_bonuses, attendance_deduction, leave_deduction, manual_deductions,
	total_deductions, gross_salary, net_salary, notes, status,
	approved_by, approved_at, created_at, updated_at
`
