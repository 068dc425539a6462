// Package expiry contains the calendar-day arithmetic used to classify
// certificate expiry dates.
//
// All comparisons are done on midnight-normalized dates in the reference
// time's location, so a certificate due "today" stays due today until the
// calendar day rolls over regardless of the hour.
//
// Two different consumers use this package with deliberately different
// semantics: the dashboard and list filter use cumulative windows (due in 3
// days counts as both "week" and "month"), while the notification engine uses
// exact day matching. Keep the predicates separate.
package expiry

import (
	"math"
	"time"
)

// DaysUntil returns the number of whole calendar days from now until expiry.
// The result is negative when the expiry day is in the past and zero when it
// is today.
func DaysUntil(expiry, now time.Time) int {
	e := midnight(expiry)
	n := midnight(now)

	// rounding absorbs DST offsets inside the span
	return int(math.Round(e.Sub(n).Hours() / 24))
}

// IsExpired reports whether the expiry day is strictly before today.
func IsExpired(expiry, now time.Time) bool {
	return DaysUntil(expiry, now) < 0
}

// IsToday reports whether the expiry day is today.
func IsToday(expiry, now time.Time) bool {
	return DaysUntil(expiry, now) == 0
}

// IsWithinDays reports whether the expiry day falls between today and
// today+n, both inclusive.
func IsWithinDays(expiry, now time.Time, n int) bool {
	d := DaysUntil(expiry, now)
	return d >= 0 && d <= n
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
