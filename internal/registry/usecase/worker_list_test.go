package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/expiry"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
)

func TestFilterByBucket(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	workers := []entity.Worker{
		{ID: 1, Certificates: []entity.Certificate{{ExpiryDate: day(-3)}}},
		{ID: 2, Certificates: []entity.Certificate{{ExpiryDate: day(0)}}},
		{ID: 3, Certificates: []entity.Certificate{{ExpiryDate: day(3)}}},
		{ID: 4, Certificates: []entity.Certificate{{ExpiryDate: day(20)}}},
		{ID: 5, Certificates: []entity.Certificate{{ExpiryDate: day(60)}}},
		{ID: 6}, // no certificates
	}

	ids := func(ws []entity.Worker) []int64 {
		out := make([]int64, 0, len(ws))
		for _, w := range ws {
			out = append(out, w.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		bucket expiry.Bucket
		want   []int64
	}{
		{name: "expired", bucket: expiry.BucketExpired, want: []int64{1}},
		{name: "today", bucket: expiry.BucketToday, want: []int64{2}},
		{name: "week includes today", bucket: expiry.BucketWeek, want: []int64{2, 3}},
		{name: "month includes week window", bucket: expiry.BucketMonth, want: []int64{2, 3, 4}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := filterByBucket(workers, tc.bucket, now)

			assert.Equal(t, tc.want, ids(got))
		})
	}

	t.Run("week qualifiers always qualify for month", func(t *testing.T) {
		week := filterByBucket(workers, expiry.BucketWeek, now)
		month := ids(filterByBucket(workers, expiry.BucketMonth, now))

		for _, w := range week {
			assert.Contains(t, month, w.ID)
		}
	})

	t.Run("worker with one matching certificate among many qualifies once", func(t *testing.T) {
		mixed := []entity.Worker{
			{ID: 7, Certificates: []entity.Certificate{
				{ExpiryDate: day(200)},
				{ExpiryDate: day(2)},
				{ExpiryDate: day(5)},
			}},
		}

		got := filterByBucket(mixed, expiry.BucketWeek, now)

		assert.Len(t, got, 1)
	})
}

func TestMatchesHeader(t *testing.T) {
	assert.True(t, matchesHeader([]string{"first_name", "last_name", "codice_fiscale", "email", "phone", "birth_date"}))
	assert.True(t, matchesHeader([]string{"First_Name", " last_name", "codice_fiscale", "email", "phone", "birth_date", "extra"}))
	assert.False(t, matchesHeader([]string{"first_name", "surname", "codice_fiscale", "email", "phone", "birth_date"}))
	assert.False(t, matchesHeader([]string{"first_name"}))
}
