package payroll

import (
	"time"

	"github.com/arkalabs/payroll-engine-go/internal/domain/attendance"
	"github.com/arkalabs/payroll-engine-go/internal/domain/leave"
	"github.com/arkalabs/payroll-engine-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// DeductionBreakdown is the output of the deduction resolver: the two
// policy-driven deduction components plus the counts behind them, kept for
// the record's audit notes.
type DeductionBreakdown struct {
	WorkingDays         int
	DailyRate           decimal.Decimal
	AbsentDays          int
	LateDays            int
	UnpaidLeaveDays     int
	AttendanceDeduction decimal.Decimal
	LeaveDeduction      decimal.Decimal
}

// ResolveDeductions computes attendance-based and leave-based deductions for
// one employee-period. Purely computed from its inputs; no side effects.
//
// Attendance policy: each absent day costs one daily rate, each late day a
// LateDeductionFactor fraction of it. Present and half_day days carry no
// penalty under current policy.
//
// Leave policy: every approved leave whose start or end date falls inside the
// period counts with its full days_count. Days beyond the remaining balance
// of the leave's category are unpaid; "other" leave has no backing category
// and is entirely unpaid. The balance row is the target calculation year's,
// not the leave's own year.
func ResolveDeductions(baseSalary decimal.Decimal, month, year int, records []attendance.Record, leaves []leave.Record, balance leave.Balance) (DeductionBreakdown, error) {
	workingDays := WorkingDays(month, year)
	if workingDays == 0 {
		return DeductionBreakdown{}, payroll.ErrNoWorkingDaysInPeriod
	}
	dailyRate := baseSalary.Div(decimal.NewFromInt(int64(workingDays)))

	var absentDays, lateDays int
	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusAbsent:
			absentDays++
		case attendance.StatusLate:
			lateDays++
		}
	}

	attendanceDeduction := dailyRate.Mul(decimal.NewFromInt(int64(absentDays))).
		Add(dailyRate.Mul(payroll.LateDeductionFactor).Mul(decimal.NewFromInt(int64(lateDays))))

	from, to := PeriodRange(month, year)

	unpaidDays := 0
	for _, l := range leaves {
		if l.Status != leave.StatusApproved || !overlapsPeriod(l, from, to) {
			continue
		}
		switch l.Type {
		case leave.TypeOther:
			unpaidDays += l.DaysCount
		default:
			if over := l.DaysCount - balance.Remaining(l.Type); over > 0 {
				unpaidDays += over
			}
		}
	}
	leaveDeduction := dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays)))

	return DeductionBreakdown{
		WorkingDays:         workingDays,
		DailyRate:           dailyRate,
		AbsentDays:          absentDays,
		LateDays:            lateDays,
		UnpaidLeaveDays:     unpaidDays,
		AttendanceDeduction: attendanceDeduction,
		LeaveDeduction:      leaveDeduction,
	}, nil
}

// A leave qualifies when its start or end date falls inside the period; a
// partial overlap still counts its full days_count.
func overlapsPeriod(l leave.Record, from, to time.Time) bool {
	return dateWithin(l.StartDate, from, to) || dateWithin(l.EndDate, from, to)
}

func dateWithin(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}
