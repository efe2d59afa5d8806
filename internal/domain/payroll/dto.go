package payroll

import (
	"github.com/arkalabs/payroll-engine-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type GeneratePayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if r.PeriodYear < MinPeriodYear {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be " + validator.Itoa(MinPeriodYear) + " or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatedPayroll struct {
	EmployeeID string         `json:"employee_id"`
	Record     RecordResponse `json:"record"`
	Breakdown  Computation    `json:"breakdown"`
}

type GeneratePayrollResponse struct {
	Created   []CreatedPayroll `json:"created"`
	Conflicts []string         `json:"conflicts"`
}

// ========== APPROVAL DTOs ==========

type ApprovePayrollRequest struct {
	PayrollIDs []string `json:"payroll_ids"`
}

func (r *ApprovePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PayrollIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "payroll_ids", Message: "at least one payroll id is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApprovePayrollResponse struct {
	Approved []RecordResponse `json:"approved"`
}

// ========== RECORD DTOs ==========

type RecordResponse struct {
	ID                  string          `json:"id"`
	EmployeeID          string          `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	EmployeeCode        string          `json:"employee_code"`
	PeriodMonth         int             `json:"period_month"`
	PeriodYear          int             `json:"period_year"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	TotalBonuses        decimal.Decimal `json:"total_bonuses"`
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`
	LeaveDeduction      decimal.Decimal `json:"leave_deduction"`
	ManualDeductions    decimal.Decimal `json:"manual_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`
	GrossSalary         decimal.Decimal `json:"gross_salary"`
	NetSalary           decimal.Decimal `json:"net_salary"`
	Status              string          `json:"status"`
	ApprovedBy          *string         `json:"approved_by,omitempty"`
	ApprovedAt          *string         `json:"approved_at,omitempty"`
	Notes               *string         `json:"notes,omitempty"`
}

type Filter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
	SortBy      string  `json:"sort_by"`
	SortOrder   string  `json:"sort_order"`
}

type ListRecordResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// ========== SUMMARY DTO ==========

type SummaryResponse struct {
	PeriodMonth     int             `json:"period_month"`
	PeriodYear      int             `json:"period_year"`
	TotalEmployees  int             `json:"total_employees"`
	TotalBaseSalary decimal.Decimal `json:"total_base_salary"`
	TotalBonuses    decimal.Decimal `json:"total_bonuses"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalGross      decimal.Decimal `json:"total_gross_salary"`
	TotalNet        decimal.Decimal `json:"total_net_salary"`
	DraftCount      int             `json:"draft_count"`
	ApprovedCount   int             `json:"approved_count"`
}
