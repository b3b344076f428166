package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	day, err := ParseDate("2024-06-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), day)

	_, err = ParseDate("06/01/2024")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	clock, err := ParseClock("19:30")
	assert.NoError(t, err)
	assert.Equal(t, 19*time.Hour+30*time.Minute, clock)

	_, err = ParseClock("7pm")
	assert.Error(t, err)
	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestSeatingWindowOverlaps(t *testing.T) {
	day, _ := ParseDate("2024-06-01")
	at19 := SeatingWindow(At(day, 19*time.Hour))

	cases := []struct {
		name    string
		start   time.Duration
		overlap bool
	}{
		{"same start", 19 * time.Hour, true},
		{"starts inside", 20 * time.Hour, true},
		{"ends inside", 17*time.Hour + 30*time.Minute, true},
		{"ends at start", 17 * time.Hour, false},
		{"starts at end", 21 * time.Hour, false},
		{"well before", 12 * time.Hour, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := SeatingWindow(At(day, tc.start))
			assert.Equal(t, tc.overlap, at19.Overlaps(other))
			assert.Equal(t, tc.overlap, other.Overlaps(at19))
		})
	}
}

func TestMidnight(t *testing.T) {
	now := time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), Midnight(now))
}
