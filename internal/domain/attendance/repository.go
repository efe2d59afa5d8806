package attendance

import "context"

type AttendanceRepository interface {
	ListForPeriod(ctx context.Context, employeeIDs []string, month, year int) ([]Record, error)
}
