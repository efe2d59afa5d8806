package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
)

// Record is an immutable historical fact once its date has passed.
type Record struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     Status
	CreatedAt  time.Time
}
