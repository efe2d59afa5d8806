package payroll

import (
	"github.com/arkalabs/payroll-engine-go/internal/domain/adjustment"
	"github.com/arkalabs/payroll-engine-go/internal/domain/attendance"
	"github.com/arkalabs/payroll-engine-go/internal/domain/employee"
	"github.com/arkalabs/payroll-engine-go/internal/domain/leave"
	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Calculate composes base salary, bonuses, manual deductions and the resolved
// attendance/leave deductions into a single payroll computation. Bonus and
// deduction records are expected to be pre-filtered to the exact period by
// the caller. All intermediate figures are returned so they can be persisted
// into the record's audit notes.
func Calculate(
	emp employee.Employee,
	month, year int,
	bonuses []adjustment.BonusRecord,
	manualDeductions []adjustment.DeductionRecord,
	attendanceRecords []attendance.Record,
	leaveRecords []leave.Record,
	balance leave.Balance,
) (payroll.Computation, error) {
	if emp.BaseSalary == nil {
		return payroll.Computation{}, payroll.ErrEmployeeHasNoBaseSalary
	}
	baseSalary := *emp.BaseSalary

	breakdown, err := ResolveDeductions(baseSalary, month, year, attendanceRecords, leaveRecords, balance)
	if err != nil {
		return payroll.Computation{}, err
	}

	totalBonuses := decimal.Zero
	for _, b := range bonuses {
		totalBonuses = totalBonuses.Add(b.Amount)
	}

	manual := decimal.Zero
	for _, d := range manualDeductions {
		manual = manual.Add(d.Amount)
	}

	totalDeductions := breakdown.AttendanceDeduction.Add(breakdown.LeaveDeduction).Add(manual)
	grossSalary := baseSalary.Add(totalBonuses)

	// Deductions can never drive pay negative; the excess is absorbed to
	// zero rather than reported as an error.
	netSalary := grossSalary.Sub(totalDeductions)
	if netSalary.IsNegative() {
		netSalary = decimal.Zero
	}

	return payroll.Computation{
		EmployeeID:          emp.ID,
		PeriodMonth:         month,
		PeriodYear:          year,
		WorkingDays:         breakdown.WorkingDays,
		DailyRate:           breakdown.DailyRate,
		AbsentDays:          breakdown.AbsentDays,
		LateDays:            breakdown.LateDays,
		UnpaidLeaveDays:     breakdown.UnpaidLeaveDays,
		BaseSalary:          baseSalary,
		TotalBonuses:        totalBonuses,
		AttendanceDeduction: breakdown.AttendanceDeduction,
		LeaveDeduction:      breakdown.LeaveDeduction,
		ManualDeductions:    manual,
		TotalDeductions:     totalDeductions,
		GrossSalary:         grossSalary,
		NetSalary:           netSalary,
	}, nil
}
