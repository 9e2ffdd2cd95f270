package models

// Settings is a singleton row. CycleStartDay is clamped to shorter months
// when cycles are computed, so 31 is a valid configuration.
type Settings struct {
	ID            string `json:"id"`
	CycleStartDay int    `json:"cycleStartDay"`
	Currency      string `json:"currency"`
}
