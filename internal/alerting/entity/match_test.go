package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMatchesThreshold(t *testing.T) {
	now := date(2025, time.January, 1)
	thresholds := []int{30, 14, 7, 1}

	tests := []struct {
		name       string
		expiryDate time.Time
		thresholds []int
		wantMatch  bool
		wantDays   int
	}{
		{
			name:       "seven days out matches the 7 threshold",
			expiryDate: date(2025, time.January, 8),
			thresholds: thresholds,
			wantMatch:  true,
			wantDays:   7,
		},
		{
			name:       "nine days out matches nothing",
			expiryDate: date(2025, time.January, 10),
			thresholds: thresholds,
			wantMatch:  false,
			wantDays:   9,
		},
		{
			name:       "ten days out is not cumulative",
			expiryDate: date(2025, time.January, 11),
			thresholds: thresholds,
			wantMatch:  false,
			wantDays:   10,
		},
		{
			name:       "thirty days out matches the outer threshold",
			expiryDate: date(2025, time.January, 31),
			thresholds: thresholds,
			wantMatch:  true,
			wantDays:   30,
		},
		{
			name:       "past due is never matched",
			expiryDate: date(2024, time.December, 22),
			thresholds: thresholds,
			wantMatch:  false,
			wantDays:   -10,
		},
		{
			name:       "empty thresholds match only today",
			expiryDate: date(2025, time.January, 1),
			thresholds: nil,
			wantMatch:  true,
			wantDays:   0,
		},
		{
			name:       "empty thresholds reject tomorrow",
			expiryDate: date(2025, time.January, 2),
			thresholds: nil,
			wantMatch:  false,
			wantDays:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMatch, gotDays := MatchesThreshold(tt.expiryDate, tt.thresholds, now)

			assert.Equal(t, tt.wantMatch, gotMatch)
			assert.Equal(t, tt.wantDays, gotDays)
		})
	}
}

func TestMatchCandidates(t *testing.T) {
	now := date(2025, time.January, 1)

	candidates := []Candidate{
		{
			Recipient: Recipient{WorkerID: 1, FirstName: "Mario", LastName: "Rossi", Email: "mario@example.com"},
			Certificates: []CandidateCertificate{
				{Name: "Formazione base", ExpiryDate: date(2025, time.January, 8)},
				{Name: "Antincendio", ExpiryDate: date(2025, time.January, 10)},
			},
		},
		{
			Recipient: Recipient{WorkerID: 2, FirstName: "Luca", LastName: "Bianchi", Email: "luca@example.com"},
			Certificates: []CandidateCertificate{
				{Name: "Primo soccorso", ExpiryDate: date(2024, time.December, 1)},
			},
		},
	}

	got := MatchCandidates(candidates, []int{30, 14, 7, 1}, now)

	assert.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].Recipient.WorkerID)
	assert.Equal(t, "Formazione base", got[0].CertificateName)
	assert.Equal(t, 7, got[0].DaysUntilExpiry)
}
