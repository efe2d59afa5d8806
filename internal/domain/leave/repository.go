package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListApprovedOverlapping returns approved leave records whose start or
	// end date falls inside [from, to].
	ListApprovedOverlapping(ctx context.Context, employeeIDs []string, from, to time.Time) ([]Record, error)

	// GetBalances returns the balance rows for the given year, keyed by
	// employee id. Employees without a row are simply absent from the map.
	GetBalances(ctx context.Context, employeeIDs []string, year int) (map[string]Balance, error)
}
