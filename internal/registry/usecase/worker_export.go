package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"strconv"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

const workerExportPageSize int32 = 1_000

type (
	WorkerExportInput struct {
		Search   string
		Statuses []string
	}

	WorkerExportOutput struct {
		FileName string
		CSV      []byte
	}
)

// WorkerExport streams the full worker directory, page by page, into a CSV
// document.
func (s *Usecase) WorkerExport(ctx context.Context, in WorkerExportInput) (*WorkerExportOutput, error) {
	ctx, span := s.startSpan(ctx, "WorkerExport")
	defer span.End()

	_, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActRead)
	if err != nil {
		return nil, err
	}

	filterData := entity.WorkerListFilterData{
		Search:   in.Search,
		Statuses: entity.ToInt16Slice(entity.ParseSafeWorkerStatuses(in.Statuses)),
		Size:     workerExportPageSize,
	}
	if in.Search != "" {
		filterData.IsFilterBySearch = true
	}
	if len(filterData.Statuses) > 0 {
		filterData.IsFilterByStatus = true
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"first_name", "last_name", "codice_fiscale", "email", "phone", "birth_date", "status", "certificates"}); err != nil {
		return nil, goerror.NewServer(err)
	}

	var (
		page    int32 = 1
		total   int64
		written int64
	)

	for {
		filterData.Page = (page - 1) * workerExportPageSize

		workers, count, err := s.repoDB.GetWorkerList(ctx, filterData)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo export workers", "error", err)
			return nil, goerror.NewServer(err)
		}

		if page == 1 {
			total = count
			if total == 0 {
				break
			}
		}

		for _, w := range workers {
			birthDate := ""
			if !w.BirthDate.IsZero() {
				birthDate = w.BirthDate.Format("2006-01-02")
			}

			record := []string{
				w.FirstName,
				w.LastName,
				w.CodiceFiscale,
				w.Email,
				w.Phone,
				birthDate,
				w.Status.String(),
				strconv.Itoa(len(w.Certificates)),
			}
			if err := writer.Write(record); err != nil {
				return nil, goerror.NewServer(err)
			}
		}

		written += int64(len(workers))
		if written >= total || len(workers) == 0 {
			break
		}

		page++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, goerror.NewServer(err)
	}

	fileName := "workers-" + s.clock.Now().UTC().Format("20060102") + ".csv"

	return &WorkerExportOutput{FileName: fileName, CSV: buf.Bytes()}, nil
}
