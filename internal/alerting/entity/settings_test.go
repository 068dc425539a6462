package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsShouldRun(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		today    string
		force    bool
		want     bool
	}{
		{
			name:     "already sent today",
			settings: Settings{DailyDigest: true, LastSentDate: "2025-01-01"},
			today:    "2025-01-01",
			want:     false,
		},
		{
			name:     "sent yesterday",
			settings: Settings{DailyDigest: true, LastSentDate: "2025-01-01"},
			today:    "2025-01-02",
			want:     true,
		},
		{
			name:     "forced overrides the guard",
			settings: Settings{DailyDigest: true, LastSentDate: "2025-01-01"},
			today:    "2025-01-01",
			force:    true,
			want:     true,
		},
		{
			name:     "daily digest off ignores the guard",
			settings: Settings{DailyDigest: false, LastSentDate: "2025-01-01"},
			today:    "2025-01-01",
			want:     true,
		},
		{
			name:     "never sent",
			settings: Settings{DailyDigest: true},
			today:    "2025-01-01",
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.ShouldRun(tt.today, tt.force))
		})
	}
}

func TestNormalizeThresholds(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{name: "sorted descending", in: []int{1, 7, 30, 14}, want: []int{30, 14, 7, 1}},
		{name: "duplicates collapse", in: []int{7, 7, 1, 7}, want: []int{7, 1}},
		{name: "non-positive dropped", in: []int{0, -3, 14}, want: []int{14}},
		{name: "empty stays empty", in: nil, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeThresholds(tt.in))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	got := DefaultSettings()

	assert.True(t, got.Enabled)
	assert.True(t, got.NotifyWorkers)
	assert.True(t, got.DailyDigest)
	assert.Equal(t, []int{30, 14, 7, 1}, got.ThresholdDays)
	assert.Empty(t, got.LastSentDate)
}
