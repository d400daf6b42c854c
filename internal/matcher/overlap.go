package matcher

import (
	"time"

	"github.com/locvowork/employee_pairs/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// Overlaps reports whether the closed ranges of a and b intersect.
// Ranges that touch on a single day overlap. Invalid dates never overlap.
func Overlaps(a, b domain.Assignment) bool {
	if !a.HasValidRange() || !b.HasValidRange() {
		return false
	}
	return !a.DateFrom.After(b.DateTo) && !b.DateFrom.After(a.DateTo)
}

// OverlapDays returns the length of the intersection of a and b, measured
// from the later start to the earlier end. A single shared day counts as 0.
// Reversed input ranges can yield a negative difference, which is clamped to 0.
func OverlapDays(a, b domain.Assignment) (int, bool) {
	if !Overlaps(a, b) {
		return 0, false
	}

	start := a.DateFrom
	if b.DateFrom.After(start) {
		start = b.DateFrom
	}
	end := a.DateTo
	if b.DateTo.Before(end) {
		end = b.DateTo
	}

	days := DaysBetween(start, end)
	if days < 0 {
		days = 0
	}
	return days, true
}

// DaysBetween counts calendar days from `from` to `to`. Both values are
// expected at UTC midnight. time.Duration would saturate for far-future
// sentinels such as 9999-01-01, so day numbers are compared instead.
func DaysBetween(from, to time.Time) int {
	return int(dayNumber(to) - dayNumber(from))
}

func dayNumber(t time.Time) int64 {
	u := t.Unix()
	if u < 0 && u%secondsPerDay != 0 {
		return u/secondsPerDay - 1
	}
	return u / secondsPerDay
}
