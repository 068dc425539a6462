package entity

import "strconv"

type WorkerStatus int16

const (
	// WorkerStatusUnknown is mean status is not known / not set.
	WorkerStatusUnknown WorkerStatus = 0

	// WorkerStatusActive mean worker is registered and employable.
	WorkerStatusActive WorkerStatus = 1

	// WorkerStatusSuspended mean worker is temporarily not employable.
	WorkerStatusSuspended WorkerStatus = 2

	// WorkerStatusLocked mean worker record is frozen pending review.
	WorkerStatusLocked WorkerStatus = 3
)

func (ws WorkerStatus) String() string {
	switch ws {
	case WorkerStatusActive:
		return "Active"
	case WorkerStatusSuspended:
		return "Suspended"
	case WorkerStatusLocked:
		return "Locked"
	default:
		return "Unknown"
	}
}

func (ws WorkerStatus) IsUnknown() bool {
	switch ws {
	case WorkerStatusActive, WorkerStatusSuspended, WorkerStatusLocked:
		return false
	default:
		return true
	}
}

func ParseSafeWorkerStatuses(raws []string) []WorkerStatus {
	out := make([]WorkerStatus, 0)
	seen := map[WorkerStatus]struct{}{}

	for _, v := range raws {
		n, err := strconv.ParseInt(v, 10, 16)
		if err != nil {
			continue
		}

		s := WorkerStatus(n)
		if s.IsUnknown() {
			continue
		}

		if _, ok := seen[s]; ok {
			continue
		}

		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

func ToInt16Slice(sts []WorkerStatus) []int16 {
	out := make([]int16, len(sts))
	for i, s := range sts {
		out[i] = int16(s)
	}
	return out
}
