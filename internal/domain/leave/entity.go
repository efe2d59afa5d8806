package leave

import "time"

type Type string

const (
	TypeAnnual Type = "annual"
	TypeSick   Type = "sick"
	TypeCasual Type = "casual"
	TypeOther  Type = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Record is a leave request. Only approved records participate in payroll
// deduction calculation.
type Record struct {
	ID         string
	EmployeeID string
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	DaysCount  int
	Status     Status
	Reason     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Balance holds per-category leave entitlements for one employee-year. The
// engine reads it to decide how many leave days are unpaid; entitlement
// accounting itself is owned by the leave service.
type Balance struct {
	ID          string
	EmployeeID  string
	Year        int
	AnnualTotal int
	AnnualUsed  int
	SickTotal   int
	SickUsed    int
	CasualTotal int
	CasualUsed  int
}

// Remaining returns the unused day count for a backed leave category. Other
// leave has no balance category and is entirely unpaid.
func (b Balance) Remaining(t Type) int {
	switch t {
	case TypeAnnual:
		return b.AnnualTotal - b.AnnualUsed
	case TypeSick:
		return b.SickTotal - b.SickUsed
	case TypeCasual:
		return b.CasualTotal - b.CasualUsed
	default:
		return 0
	}
}
