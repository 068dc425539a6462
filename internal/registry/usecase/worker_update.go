package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type WorkerUpdateInput struct {
	ID           int64                    `validate:"required,gt=0"`
	FirstName    string                   `validate:"required,min=2,max=100,alphaspace"`
	LastName     string                   `validate:"required,min=2,max=100,alphaspace"`
	Email        string                   `validate:"omitempty,email"`
	Phone        string                   `validate:"omitempty,min=6,max=20"`
	BirthDate    time.Time                `validate:"omitempty"`
	CompanyID    int64                    `validate:"omitempty,gt=0"`
	Status       entity.WorkerStatus      `validate:"omitempty,gt=0"`
	Certificates []WorkerCertificateInput `validate:"omitempty,max=50,dive"`
}

// WorkerUpdate replaces the worker's mutable fields and its whole certificate
// set. Certificates are immutable rows, so the update swaps the set rather
// than patching individual entries.
func (s *Usecase) WorkerUpdate(ctx context.Context, in WorkerUpdateInput) error {
	ctx, span := s.startSpan(ctx, "WorkerUpdate")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActUpdate)
	if err != nil {
		return err
	}

	if _, err := s.repoDB.GetWorkerByID(ctx, in.ID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("worker not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo get worker", "worker_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	certs := make([]entity.NewCertificate, 0, len(in.Certificates))
	for _, c := range in.Certificates {
		certs = append(certs, entity.NewCertificate{
			ID:         s.uid.Generate(),
			Name:       strings.TrimSpace(c.Name),
			IssueDate:  c.IssueDate,
			ExpiryDate: c.ExpiryDate,
		})
	}

	patch := entity.PatchWorker{
		ID:           in.ID,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:        strings.TrimSpace(in.Phone),
		BirthDate:    in.BirthDate,
		CompanyID:    in.CompanyID,
		Status:       in.Status,
		Certificates: certs,
		UpdatedBy:    clm.UserID,
	}

	if err := s.repoDB.UpdateWorker(ctx, patch); err != nil {
		slog.ErrorContext(ctx, "failed to repo update worker", "worker_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
