package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Records start as draft and can only move to approved; there is
// no rejected or cancelled state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
)

// Record is the persisted payroll result for one employee-period. The
// (employee_id, period_month, period_year) triple is the idempotency key and
// carries a unique constraint in the store.
type Record struct {
	ID                  string
	EmployeeID          string
	PeriodMonth         int
	PeriodYear          int
	BaseSalary          decimal.Decimal
	TotalBonuses        decimal.Decimal
	AttendanceDeduction decimal.Decimal
	LeaveDeduction      decimal.Decimal
	ManualDeductions    decimal.Decimal
	TotalDeductions     decimal.Decimal
	GrossSalary         decimal.Decimal
	NetSalary           decimal.Decimal
	Notes               *string
	Status              Status
	ApprovedBy          *string
	ApprovedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Computation carries every intermediate figure of a payroll calculation so
// the breakdown can be persisted into the record's audit notes.
type Computation struct {
	EmployeeID          string          `json:"employee_id"`
	PeriodMonth         int             `json:"period_month"`
	PeriodYear          int             `json:"period_year"`
	WorkingDays         int             `json:"working_days"`
	DailyRate           decimal.Decimal `json:"daily_rate"`
	AbsentDays          int             `json:"absent_days"`
	LateDays            int             `json:"late_days"`
	UnpaidLeaveDays     int             `json:"unpaid_leave_days"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	TotalBonuses        decimal.Decimal `json:"total_bonuses"`
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	LeaveDeduction      decimal.Decimal `json:"leave_deduction"`
	ManualDeductions    decimal.Decimal `json:"manual_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	GrossSalary         decimal.Decimal `json:"gross_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`
}
