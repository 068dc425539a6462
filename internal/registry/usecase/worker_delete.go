package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type WorkerDeleteInput struct {
	ID int64
}

func (s *Usecase) WorkerDelete(ctx context.Context, in WorkerDeleteInput) error {
	ctx, span := s.startSpan(ctx, "WorkerDelete")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActDelete)
	if err != nil {
		return err
	}

	if err := s.repoDB.MarkWorkerDeleted(ctx, in.ID, clm.UserID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("worker not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo delete worker", "worker_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
