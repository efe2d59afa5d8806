package postgresql

import (
	"context"
	"fmt"

	"github.com/arkalabs/payroll-engine-go/internal/domain/attendance"
	"github.com/arkalabs/payroll-engine-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) ListForPeriod(ctx context.Context, employeeIDs []string, month, year int) ([]attendance.Record, error) {
	query := `
		SELECT id, employee_id, date, status, created_at
		FROM attendance_records
		WHERE employee_id = ANY($1)
			AND EXTRACT(MONTH FROM date) = $2
			AND EXTRACT(YEAR FROM date) = $3
		ORDER BY date
	`

	rows, err := r.db.Query(ctx, query, employeeIDs, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}
