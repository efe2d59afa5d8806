package payroll

import "github.com/shopspring/decimal"

// Deduction policy constants. Named here rather than inlined so policy changes
// stay auditable.
var (
	// LateDeductionFactor is the fraction of a daily rate deducted per late day.
	LateDeductionFactor = decimal.NewFromFloat(0.1)
)

// MinPeriodYear is the earliest year payroll can be generated for.
const MinPeriodYear = 2020
