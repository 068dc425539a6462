package entity

import "slices"

// Settings is the singleton notification configuration. LastSentDate is owned
// by the automatic run and is never written by an operator save.
type Settings struct {
	Enabled        bool
	ThresholdDays  []int
	NotifyWorkers  bool
	NotifyOperator bool
	OperatorEmail  string
	DailyDigest    bool
	LastSentDate   string // YYYY-MM-DD in UTC; empty until the first automatic run
}

// DefaultSettings is the configuration used when no settings row exists yet.
func DefaultSettings() Settings {
	return Settings{
		Enabled:       true,
		ThresholdDays: []int{30, 14, 7, 1},
		NotifyWorkers: true,
		DailyDigest:   true,
	}
}

// NormalizeThresholds collapses duplicates, drops non-positive values and
// returns the thresholds in descending order.
func NormalizeThresholds(days []int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d > 0 && !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.SortFunc(out, func(a, b int) int { return b - a })
	return out
}

// ShouldRun reports whether a notification run may proceed today. Forced runs
// and configurations without the daily digest always proceed; otherwise one
// run per calendar day, compared as YYYY-MM-DD strings in UTC.
func (s Settings) ShouldRun(today string, force bool) bool {
	if !s.DailyDigest || force {
		return true
	}
	return s.LastSentDate != today
}
