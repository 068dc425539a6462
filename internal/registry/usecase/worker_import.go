package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

const workerImportMaxRows = 10_000

// workerImportHeader is the required first row of an import file.
var workerImportHeader = []string{"first_name", "last_name", "codice_fiscale", "email", "phone", "birth_date"}

type (
	workerImportRowInput struct {
		FirstName     string `validate:"required,min=2,max=100,alphaspace"`
		LastName      string `validate:"required,min=2,max=100,alphaspace"`
		CodiceFiscale string `validate:"required,codice_fiscale"`
		Email         string `validate:"omitempty,email"`
		Phone         string `validate:"omitempty,min=6,max=20"`
	}

	WorkerImportInput struct {
		File io.Reader
	}

	WorkerImportOutput struct {
		Created int
		Updated int
		Failed  int
	}
)

// WorkerImport parses a CSV file and upserts one worker per row, keyed by
// codice fiscale. Invalid rows are counted and skipped, they do not abort the
// import. Completion is announced on the message bus.
func (s *Usecase) WorkerImport(ctx context.Context, in WorkerImportInput) (*WorkerImportOutput, error) {
	ctx, span := s.startSpan(ctx, "WorkerImport")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActCreate)
	if err != nil {
		return nil, err
	}

	if in.File == nil {
		return nil, goerror.NewInvalidFormat("import file is required")
	}

	reader := csv.NewReader(in.File)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, goerror.NewInvalidFormat("import file is empty or not a CSV")
	}
	if !matchesHeader(header) {
		return nil, goerror.NewInvalidFormat("import file header must be: " + strings.Join(workerImportHeader, ","))
	}

	var (
		workers []entity.UpsertWorker
		failed  int
		seen    = map[string]struct{}{}
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			failed++
			continue
		}
		if len(workers)+failed >= workerImportMaxRows {
			return nil, goerror.NewInvalidFormat("import file exceeds the row limit")
		}
		if len(record) < len(workerImportHeader) {
			failed++
			continue
		}

		row := workerImportRowInput{
			FirstName:     strings.TrimSpace(record[0]),
			LastName:      strings.TrimSpace(record[1]),
			CodiceFiscale: strings.ToUpper(strings.TrimSpace(record[2])),
			Email:         strings.TrimSpace(strings.ToLower(record[3])),
			Phone:         strings.TrimSpace(record[4]),
		}
		if err := s.validator.Validate(row); err != nil {
			failed++
			continue
		}
		if _, dup := seen[row.CodiceFiscale]; dup {
			failed++
			continue
		}
		seen[row.CodiceFiscale] = struct{}{}

		var birthDate time.Time
		if raw := strings.TrimSpace(record[5]); raw != "" {
			birthDate, err = time.Parse("2006-01-02", raw)
			if err != nil {
				failed++
				continue
			}
		}

		workers = append(workers, entity.UpsertWorker{
			ID:            s.uid.Generate(),
			FirstName:     row.FirstName,
			LastName:      row.LastName,
			CodiceFiscale: row.CodiceFiscale,
			Email:         row.Email,
			Phone:         row.Phone,
			BirthDate:     birthDate,
			Status:        entity.WorkerStatusActive,
			CreatedBy:     clm.UserID,
			UpdatedBy:     clm.UserID,
		})
	}

	if len(workers) == 0 {
		return nil, goerror.NewInvalidFormat("import file contains no valid rows")
	}

	created, updated, err := s.repoDB.UpsertWorkers(ctx, workers)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo upsert workers", "error", err)
		return nil, goerror.NewServer(err)
	}

	evt := WorkersImportedEvent{
		OperatorID: clm.UserID,
		Created:    created,
		Updated:    updated,
		Failed:     failed,
	}
	if err := s.repoMessaging.PublishWorkersImported(ctx, evt); err != nil {
		slog.ErrorContext(ctx, "failed to publish workers imported event", "error", err)
	}

	return &WorkerImportOutput{Created: created, Updated: updated, Failed: failed}, nil
}

func matchesHeader(header []string) bool {
	if len(header) < len(workerImportHeader) {
		return false
	}
	for i, want := range workerImportHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return false
		}
	}
	return true
}
