package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{name: "same day ignores clock time", expiry: time.Date(2025, time.March, 10, 0, 1, 0, 0, time.UTC), want: 0},
		{name: "tomorrow", expiry: date(2025, time.March, 11), want: 1},
		{name: "a week out", expiry: date(2025, time.March, 17), want: 7},
		{name: "yesterday", expiry: date(2025, time.March, 9), want: -1},
		{name: "ten days past due", expiry: date(2025, time.February, 28), want: -10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysUntil(tc.expiry, now))
		})
	}
}

func TestPredicates(t *testing.T) {
	now := date(2025, time.March, 10)

	assert.True(t, IsExpired(date(2025, time.March, 9), now))
	assert.False(t, IsExpired(now, now))

	assert.True(t, IsToday(now, now))
	assert.False(t, IsToday(date(2025, time.March, 11), now))

	// boundary day 7 is inclusive, day 8 is not
	assert.True(t, IsWithinDays(date(2025, time.March, 17), now, 7))
	assert.False(t, IsWithinDays(date(2025, time.March, 18), now, 7))

	// within-days includes today but never the past
	assert.True(t, IsWithinDays(now, now, 7))
	assert.False(t, IsWithinDays(date(2025, time.March, 9), now, 7))
}

func TestClassify(t *testing.T) {
	now := date(2025, time.March, 10)

	tests := []struct {
		name   string
		expiry time.Time
		want   Bucket
	}{
		{name: "zero value", expiry: time.Time{}, want: BucketNone},
		{name: "past due", expiry: date(2025, time.March, 1), want: BucketExpired},
		{name: "due today", expiry: now, want: BucketToday},
		{name: "due in three days", expiry: date(2025, time.March, 13), want: BucketWeek},
		{name: "boundary day seven", expiry: date(2025, time.March, 17), want: BucketWeek},
		{name: "day eight", expiry: date(2025, time.March, 18), want: BucketMonth},
		{name: "boundary day thirty", expiry: date(2025, time.April, 9), want: BucketMonth},
		{name: "day thirty one", expiry: date(2025, time.April, 10), want: BucketNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.expiry, now))
		})
	}
}

func TestMatchesCumulative(t *testing.T) {
	now := date(2025, time.March, 10)
	inThreeDays := date(2025, time.March, 13)

	// week window is a subset of the month window
	assert.True(t, Matches(BucketWeek, inThreeDays, now))
	assert.True(t, Matches(BucketMonth, inThreeDays, now))

	// today counts in every upcoming window
	assert.True(t, Matches(BucketToday, now, now))
	assert.True(t, Matches(BucketWeek, now, now))
	assert.True(t, Matches(BucketMonth, now, now))

	// expired stays disjoint from the upcoming windows
	past := date(2025, time.March, 1)
	assert.True(t, Matches(BucketExpired, past, now))
	assert.False(t, Matches(BucketWeek, past, now))
	assert.False(t, Matches(BucketMonth, past, now))

	assert.False(t, Matches(BucketWeek, time.Time{}, now))
	assert.False(t, Matches(BucketNone, inThreeDays, now))
}

func TestParseBucket(t *testing.T) {
	for _, v := range []string{"expired", "today", "week", "month"} {
		b, ok := ParseBucket(v)
		assert.True(t, ok)
		assert.Equal(t, Bucket(v), b)
	}

	b, ok := ParseBucket("")
	assert.True(t, ok)
	assert.Equal(t, BucketNone, b)

	_, ok = ParseBucket("fortnight")
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	now := date(2025, time.March, 10)

	t.Run("due today lands in all upcoming buckets", func(t *testing.T) {
		got := Count([]time.Time{now}, now)

		assert.Equal(t, Summary{Expired: 0, Today: 1, WithinWeek: 1, WithinMonth: 1}, got)
	})

	t.Run("expired ten days ago counts only as expired", func(t *testing.T) {
		got := Count([]time.Time{date(2025, time.February, 28)}, now)

		assert.Equal(t, Summary{Expired: 1}, got)
	})

	t.Run("mixed set tallies cumulatively", func(t *testing.T) {
		expiries := []time.Time{
			date(2025, time.March, 1),  // expired
			now,                        // today
			date(2025, time.March, 13), // in 3 days
			date(2025, time.March, 30), // in 20 days
			date(2025, time.June, 1),   // far out
			{},                         // no expiry recorded
		}

		got := Count(expiries, now)

		assert.Equal(t, Summary{Expired: 1, Today: 1, WithinWeek: 2, WithinMonth: 3}, got)
	})

	t.Run("ordering invariant today <= week <= month", func(t *testing.T) {
		expiries := []time.Time{
			now,
			date(2025, time.March, 12),
			date(2025, time.March, 25),
			date(2025, time.April, 2),
		}

		got := Count(expiries, now)

		assert.LessOrEqual(t, got.Today, got.WithinWeek)
		assert.LessOrEqual(t, got.WithinWeek, got.WithinMonth)
	})

	t.Run("idempotent for a fixed now", func(t *testing.T) {
		expiries := []time.Time{now, date(2025, time.March, 20)}

		assert.Equal(t, Count(expiries, now), Count(expiries, now))
	})
}
