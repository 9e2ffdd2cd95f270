package cycle

import "time"

// Unit is a recurring interval unit.
type Unit string

const (
	UnitDay   Unit = "day"
	UnitWeek  Unit = "week"
	UnitMonth Unit = "month"
	UnitYear  Unit = "year"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitDay, UnitWeek, UnitMonth, UnitYear:
		return true
	}
	return false
}

// Advance moves d forward by n units. Days and weeks are fixed-length.
// Months and years are calendar-aware: the day-of-month is clamped when the
// target month is shorter, so Jan 31 + 1 month lands on Feb 28/29. This is
// the same clamping primitive the cycle boundaries use.
func Advance(d time.Time, unit Unit, n int) time.Time {
	switch unit {
	case UnitDay:
		return d.AddDate(0, 0, n)
	case UnitWeek:
		return d.AddDate(0, 0, 7*n)
	case UnitMonth:
		return addMonthsClamped(d, n)
	case UnitYear:
		return addMonthsClamped(d, 12*n)
	}
	return d
}

func addMonthsClamped(d time.Time, months int) time.Time {
	year, month, day := d.Date()
	total := year*12 + int(month) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)
	return Date(ny, nm, clampDay(ny, nm, day))
}
