package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDurationBuckets(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  string
	}{
		{"single day", date(2024, 1, 1), date(2024, 1, 2), "1 days"},
		{"six days", date(2024, 1, 1), date(2024, 1, 7), "6 days"},
		{"exactly one week", date(2024, 1, 1), date(2024, 1, 8), "1 weeks"},
		{"thirteen days floors to one week", date(2024, 1, 1), date(2024, 1, 14), "1 weeks"},
		{"four weeks", date(2024, 1, 1), date(2024, 1, 29), "4 weeks"},
		{"thirty days", date(2024, 1, 1), date(2024, 1, 31), "1 months"},
		{"sixty days", date(2024, 1, 1), date(2024, 3, 1), "2 months"},
		{"reversed range uses absolute span", date(2024, 3, 1), date(2024, 1, 1), "2 months"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Duration(tt.start, tt.end))
		})
	}
}

func TestDurationIdempotent(t *testing.T) {
	start, end := date(2024, 1, 1), date(2024, 2, 15)
	assert.Equal(t, Duration(start, end), Duration(start, end))
}

func TestProgressBounds(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 1, 11) // 10 days

	assert.Equal(t, 0, Progress(start, end, start))
	assert.Equal(t, 50, Progress(start, end, date(2024, 1, 6)))
	assert.Equal(t, 100, Progress(start, end, end))

	// Clamped outside the range
	assert.Equal(t, 0, Progress(start, end, date(2023, 12, 1)))
	assert.Equal(t, 100, Progress(start, end, date(2024, 6, 1)))
}

func TestProgressMonotonic(t *testing.T) {
	start := date(2024, 1, 1)
	end := date(2024, 2, 1)

	prev := -1
	for now := start; !now.After(end); now = now.Add(6 * time.Hour) {
		p := Progress(start, end, now)
		assert.GreaterOrEqual(t, p, prev, "progress regressed at %s", now)
		prev = p
	}
}

func TestProgressZeroDurationGuard(t *testing.T) {
	day := date(2024, 1, 1)
	assert.Equal(t, 0, Progress(day, day, day.Add(time.Hour)))
	assert.Equal(t, 0, Progress(day.Add(time.Hour), day, day))
}

func TestDaysLeft(t *testing.T) {
	end := date(2024, 1, 10)

	assert.Equal(t, 5, DaysLeft(end, date(2024, 1, 5)))
	assert.Equal(t, 1, DaysLeft(end, date(2024, 1, 9).Add(12*time.Hour)))
	assert.Equal(t, 0, DaysLeft(end, end))
	// Never negative
	assert.Equal(t, 0, DaysLeft(end, date(2024, 2, 1)))
}

func TestIsOverdue(t *testing.T) {
	end := date(2024, 1, 10)

	assert.False(t, IsOverdue(end, date(2024, 1, 5)))
	assert.False(t, IsOverdue(end, end))
	// A few hours past the end is still within the current day bucket
	assert.False(t, IsOverdue(end, end.Add(6*time.Hour)))
	assert.True(t, IsOverdue(end, date(2024, 1, 12)))
}
