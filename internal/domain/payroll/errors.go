package payroll

import "errors"

var (
	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrInvalidPeriod              = errors.New("invalid payroll period")
	ErrEmployeeHasNoBaseSalary    = errors.New("employee has no base salary configured")
	ErrNoWorkingDaysInPeriod      = errors.New("period has no working days")
)
