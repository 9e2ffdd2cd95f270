package cycle

import "time"

// All cycle math operates on calendar fields at UTC midnight. Dates are
// never shifted through timezones, so day boundaries stay stable.

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string into a normalized calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date builds a normalized calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	// Day zero of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year int, month time.Month, day int) int {
	if max := daysIn(year, month); day > max {
		return max
	}
	return day
}

// Start returns the start date of the budgeting cycle containing d.
// startDay is clamped to the length of the candidate month, so a startDay
// of 31 yields Feb 28/29 as the February boundary. A day-of-month equal to
// the (clamped) start day is the first day of the current cycle, not the
// last day of the previous one. startDay outside 1-31 is a configuration
// error rejected at the settings-write boundary, not here.
func Start(d time.Time, startDay int) time.Time {
	year, month, day := d.Date()
	candidate := clampDay(year, month, startDay)
	if day >= candidate {
		return Date(year, month, candidate)
	}
	return step(Date(year, month, candidate), startDay, -1)
}

// Next returns the start of the cycle after the one beginning at start.
func Next(start time.Time, startDay int) time.Time {
	return step(start, startDay, 1)
}

// Prev returns the start of the cycle before the one beginning at start.
func Prev(start time.Time, startDay int) time.Time {
	return step(start, startDay, -1)
}

// step moves a cycle boundary by one calendar month in either direction,
// re-clamping to startDay or the target month's last day. Each step clamps
// independently so repeated stepping never drifts off the configured day.
func step(t time.Time, startDay, months int) time.Time {
	year, month, _ := t.Date()
	total := year*12 + int(month) - 1 + months
	ny, nm := total/12, time.Month(total%12+1)
	return Date(ny, nm, clampDay(ny, nm, startDay))
}
