package services

import (
	"fmt"
	"math"
	"time"
)

// Pure date/progress calculators shared by the dashboard, list and detail
// views. All functions take explicit timestamps so reads are deterministic
// for a given wall-clock now.

// Duration formats the span between start and end as a human string.
// Buckets use floor division: 13 days is "1 weeks", not "2 weeks".
func Duration(start, end time.Time) string {
	diff := end.Sub(start)
	if diff < 0 {
		diff = -diff
	}
	diffDays := int(math.Ceil(diff.Hours() / 24))

	if diffDays < 7 {
		return fmt.Sprintf("%d days", diffDays)
	}
	if diffDays < 30 {
		return fmt.Sprintf("%d weeks", diffDays/7)
	}
	return fmt.Sprintf("%d months", diffDays/30)
}

// Progress returns the elapsed share of the internship as a 0-100 integer,
// rounded to nearest and clamped. A non-positive total duration is forbidden
// by the create-time invariant but guarded anyway.
func Progress(start, end, now time.Time) int {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}

	elapsed := now.Sub(start)
	pct := float64(elapsed) / float64(total) * 100

	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return int(math.Round(pct))
}

// DaysLeft returns the whole days remaining until end, floored at zero
func DaysLeft(end, now time.Time) int {
	days := rawDaysLeft(end, now)
	if days < 0 {
		return 0
	}
	return days
}

// IsOverdue reports whether end has already passed
func IsOverdue(end, now time.Time) bool {
	return rawDaysLeft(end, now) < 0
}

func rawDaysLeft(end, now time.Time) int {
	return int(math.Ceil(end.Sub(now).Hours() / 24))
}
