package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type WorkerDetailInput struct {
	ID int64
}

type WorkerDetailOutput struct {
	Worker entity.Worker
}

func (s *Usecase) WorkerDetail(ctx context.Context, in WorkerDetailInput) (*WorkerDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "WorkerDetail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActRead); err != nil {
		return nil, err
	}

	worker, err := s.repoDB.GetWorkerByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("worker not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get worker", "worker_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &WorkerDetailOutput{Worker: *worker}, nil
}
