package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/expiry"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type WorkerListInput struct {
	Search    string // value already trimmed
	Statuses  []string
	Bucket    string // one of: expired, today, week, month; empty means no expiry filter
	Size      int32
	Page      int32
	SortBy    string // value already trimmed
	SortOrder string // value is: `asc` or `desc`; already trimmed and lowered
}

type WorkerListOutput struct {
	Page    int32
	Size    int32
	Total   int64
	Workers []entity.Worker
}

func (s *Usecase) WorkerList(ctx context.Context, in WorkerListInput) (*WorkerListOutput, error) {
	ctx, span := s.startSpan(ctx, "WorkerList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActRead); err != nil {
		return nil, err
	}

	bucket, ok := expiry.ParseBucket(in.Bucket)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "bucket", "must be one of: expired, today, week, month")
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}
	filterData := entity.WorkerListFilterData{
		OrderBy:        in.SortBy,
		OrderDirection: in.SortOrder,
		Search:         in.Search,
		Statuses:       entity.ToInt16Slice(entity.ParseSafeWorkerStatuses(in.Statuses)),
		Size:           in.Size,
		Page:           (max(in.Page, 1) - 1) * in.Size,
	}
	if in.Search != "" {
		filterData.IsFilterBySearch = true
	}
	if len(filterData.Statuses) > 0 {
		filterData.IsFilterByStatus = true
	}

	workers, count, err := s.repoDB.GetWorkerList(ctx, filterData)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list workers", "error", err)
		return nil, goerror.NewServer(err)
	}

	if in.Bucket != "" {
		workers = filterByBucket(workers, bucket, s.clock.Now())
	}

	return &WorkerListOutput{
		Page:    max(in.Page, 1),
		Size:    in.Size,
		Total:   count,
		Workers: workers,
	}, nil
}

// filterByBucket keeps workers holding at least one certificate in the
// requested expiry window. The windows are cumulative, so the week filter
// includes certificates due today and the month filter includes the week
// window. Workers without certificates never qualify.
func filterByBucket(workers []entity.Worker, b expiry.Bucket, now time.Time) []entity.Worker {
	out := make([]entity.Worker, 0, len(workers))
	for _, w := range workers {
		for _, c := range w.Certificates {
			if expiry.Matches(b, c.ExpiryDate, now) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}
