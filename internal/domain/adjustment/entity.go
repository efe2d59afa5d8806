package adjustment

import (
	"time"

	"github.com/shopspring/decimal"
)

// BonusRecord is a flat-amount bonus entered by HR for one employee-period.
type BonusRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Amount      decimal.Decimal
	Category    string
	Description *string
	CreatedAt   time.Time
}

// DeductionRecord is a flat-amount manual deduction entered by HR for one
// employee-period.
type DeductionRecord struct {
	ID          string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	Amount      decimal.Decimal
	Category    string
	Description *string
	CreatedAt   time.Time
}
