package postgresql

import (
	"context"
	"fmt"

	"github.com/arkalabs/payroll-engine-go/internal/domain/employee"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_code, full_name, email, position_name, hire_date,
	employment_status, base_salary, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FullName, &e.Email, &e.PositionName, &e.HireDate,
		&e.EmploymentStatus, &e.BaseSalary, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) GetActive(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employment_status = $1 ORDER BY employee_code`

	rows, err := r.db.Query(ctx, query, employee.EmploymentStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}
