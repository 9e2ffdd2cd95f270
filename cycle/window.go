package cycle

import "time"

// DefaultPastCycles is how many past cycles the window includes alongside
// the current cycle and one future cycle.
const DefaultPastCycles = 11

// OverallValue identifies the synthetic "all time" pseudo-cycle.
const OverallValue = "overall"

// Entry is one cycle in a navigation window. Start and End are inclusive.
// The overall pseudo-entry has no dates and is never current.
type Entry struct {
	Value     string `json:"value"`
	Label     string `json:"label"`
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	IsCurrent bool   `json:"isCurrent"`
	Overall   bool   `json:"overall,omitempty"`
}

// Window produces cycle entries sorted newest first: one future cycle, the
// current cycle, pastCount past cycles, then the overall pseudo-entry. The
// future entry exists for display and lookup only; navigation never moves
// onto it (see CanGoNext).
func Window(startDay int, today time.Time, pastCount int) []Entry {
	if pastCount < 0 {
		pastCount = DefaultPastCycles
	}
	current := Start(today, startDay)

	starts := make([]time.Time, 0, pastCount+2)
	it := Next(current, startDay)
	for i := 0; i < pastCount+2; i++ {
		starts = append(starts, it)
		it = Prev(it, startDay)
	}

	entries := make([]Entry, 0, len(starts)+1)
	nextStart := Next(starts[0], startDay)
	for _, start := range starts {
		end := nextStart.AddDate(0, 0, -1)
		entries = append(entries, Entry{
			Value:     FormatDate(start),
			Label:     start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006"),
			Start:     FormatDate(start),
			End:       FormatDate(end),
			IsCurrent: start.Equal(current),
		})
		nextStart = start
	}

	entries = append(entries, Entry{
		Value:   OverallValue,
		Label:   "Overall",
		Overall: true,
	})
	return entries
}

// CanGoNext reports whether navigation can move one cycle toward the
// future. It is false at the current cycle (the future entry is never
// reached by navigation), at the future entry itself, and on the overall
// pseudo-entry.
func CanGoNext(entries []Entry, selected int) bool {
	if selected <= 0 || selected >= len(entries) {
		return false
	}
	e := entries[selected]
	return !e.Overall && !e.IsCurrent
}

// CanGoPrev reports whether navigation can move one cycle into the past.
// It is false at the oldest real cycle and on the overall pseudo-entry.
func CanGoPrev(entries []Entry, selected int) bool {
	if selected < 0 || selected >= len(entries) {
		return false
	}
	if entries[selected].Overall {
		return false
	}
	// The entry after the oldest real cycle is the overall pseudo-entry.
	return selected+1 < len(entries) && !entries[selected+1].Overall
}

// FindEntry returns the index of the entry with the given value, or -1.
func FindEntry(entries []Entry, value string) int {
	for i, e := range entries {
		if e.Value == value {
			return i
		}
	}
	return -1
}
