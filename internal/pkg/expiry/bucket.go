package expiry

import "time"

const (
	weekDays  = 7
	monthDays = 30
)

// Bucket is a mutually exclusive classification of a single expiry date.
type Bucket string

const (
	// BucketNone means the date is more than 30 days away or absent.
	BucketNone Bucket = "none"
	// BucketExpired means the expiry day is strictly before today.
	BucketExpired Bucket = "expired"
	// BucketToday means the expiry day is today.
	BucketToday Bucket = "today"
	// BucketWeek means the expiry day is within the next 7 days (excluding today).
	BucketWeek Bucket = "week"
	// BucketMonth means the expiry day is within the next 30 days but past the week window.
	BucketMonth Bucket = "month"
)

// ParseBucket maps a query-string value to a Bucket. Empty input means no
// filter; anything unrecognized reports false.
func ParseBucket(s string) (Bucket, bool) {
	switch s {
	case "":
		return BucketNone, true
	case "expired":
		return BucketExpired, true
	case "today":
		return BucketToday, true
	case "week":
		return BucketWeek, true
	case "month":
		return BucketMonth, true
	default:
		return BucketNone, false
	}
}

// Classify returns the single mutually exclusive bucket for an expiry date.
// Zero-value expiry dates classify as none.
func Classify(expiry, now time.Time) Bucket {
	if expiry.IsZero() {
		return BucketNone
	}

	d := DaysUntil(expiry, now)
	switch {
	case d < 0:
		return BucketExpired
	case d == 0:
		return BucketToday
	case d <= weekDays:
		return BucketWeek
	case d <= monthDays:
		return BucketMonth
	default:
		return BucketNone
	}
}

// Matches reports whether an expiry date falls in the requested bucket using
// cumulative window semantics: week includes today, month includes the week
// window. Zero-value expiry dates never match.
func Matches(b Bucket, expiry, now time.Time) bool {
	if expiry.IsZero() {
		return false
	}

	switch b {
	case BucketExpired:
		return IsExpired(expiry, now)
	case BucketToday:
		return IsToday(expiry, now)
	case BucketWeek:
		return IsWithinDays(expiry, now, weekDays)
	case BucketMonth:
		return IsWithinDays(expiry, now, monthDays)
	default:
		return false
	}
}

// Summary holds the cumulative dashboard tallies. Today is a subset of
// WithinWeek, which is a subset of WithinMonth; Expired is disjoint from all
// three.
type Summary struct {
	Expired     int
	Today       int
	WithinWeek  int
	WithinMonth int
}

// Count tallies a set of expiry dates into cumulative buckets. Zero-value
// dates are skipped entirely.
func Count(expiries []time.Time, now time.Time) Summary {
	var s Summary
	for _, e := range expiries {
		if e.IsZero() {
			continue
		}

		switch {
		case IsExpired(e, now):
			s.Expired++
		case IsToday(e, now):
			s.Today++
			s.WithinWeek++
			s.WithinMonth++
		case IsWithinDays(e, now, weekDays):
			s.WithinWeek++
			s.WithinMonth++
		case IsWithinDays(e, now, monthDays):
			s.WithinMonth++
		}
	}

	return s
}
