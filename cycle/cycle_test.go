package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		startDay int
		want     string
	}{
		{"on the start day", "2024-01-31", 31, "2024-01-31"},
		{"before clamped february boundary", "2024-02-15", 31, "2024-01-31"},
		{"on clamped february boundary", "2024-02-29", 31, "2024-02-29"},
		{"clamped boundary in non-leap year", "2023-02-28", 31, "2023-02-28"},
		{"before boundary in non-leap february", "2023-02-15", 31, "2023-01-31"},
		{"first of month with start day 1", "2024-06-01", 1, "2024-06-01"},
		{"mid month with start day 1", "2024-06-15", 1, "2024-06-01"},
		{"before start day falls into previous month", "2024-06-15", 20, "2024-05-20"},
		{"on start day", "2024-06-20", 20, "2024-06-20"},
		{"january date before start day wraps to december", "2024-01-05", 15, "2023-12-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.date)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatDate(Start(d, tt.startDay)))
		})
	}
}

func TestStartIdempotent(t *testing.T) {
	d := Date(2023, time.January, 1)
	for i := 0; i < 800; i++ {
		for _, startDay := range []int{1, 15, 28, 29, 30, 31} {
			once := Start(d, startDay)
			twice := Start(once, startDay)
			require.True(t, once.Equal(twice),
				"Start not idempotent for %s day %d: %s vs %s",
				FormatDate(d), startDay, FormatDate(once), FormatDate(twice))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestStartContainsDate(t *testing.T) {
	d := Date(2023, time.June, 1)
	for i := 0; i < 400; i++ {
		for _, startDay := range []int{1, 10, 28, 31} {
			start := Start(d, startDay)
			require.False(t, start.After(d),
				"cycle start %s is after %s", FormatDate(start), FormatDate(d))
			next := Next(start, startDay)
			require.True(t, d.Before(next),
				"%s is not before next cycle start %s", FormatDate(d), FormatDate(next))
		}
		d = d.AddDate(0, 0, 1)
	}
}

func TestStepReclampsEveryMonth(t *testing.T) {
	// Walking forward through February must land on Feb 29 and recover to
	// the configured day in March.
	jan := Date(2024, time.January, 31)
	feb := Next(jan, 31)
	assert.Equal(t, "2024-02-29", FormatDate(feb))
	mar := Next(feb, 31)
	assert.Equal(t, "2024-03-31", FormatDate(mar))

	// And back again.
	assert.Equal(t, "2024-02-29", FormatDate(Prev(mar, 31)))
	assert.Equal(t, "2024-01-31", FormatDate(Prev(feb, 31)))
}
