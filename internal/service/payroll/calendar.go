package payroll

import "time"

// WorkingDays counts the calendar days of the given month that fall on
// Monday through Friday. Pure and total; callers must still treat a zero
// result as an internal error before dividing by it.
func WorkingDays(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	count := 0
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			count++
		}
	}
	return count
}

// PeriodRange returns the first and last calendar day of the period.
func PeriodRange(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}
