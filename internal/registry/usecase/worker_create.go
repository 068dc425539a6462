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

type (
	WorkerCertificateInput struct {
		Name       string    `validate:"required,min=2,max=150"`
		IssueDate  time.Time `validate:"omitempty"`
		ExpiryDate time.Time `validate:"required"`
	}

	WorkerCreateInput struct {
		FirstName     string                   `validate:"required,min=2,max=100,alphaspace"`
		LastName      string                   `validate:"required,min=2,max=100,alphaspace"`
		CodiceFiscale string                   `validate:"required,codice_fiscale"`
		Email         string                   `validate:"omitempty,email"`
		Phone         string                   `validate:"omitempty,min=6,max=20"`
		BirthDate     time.Time                `validate:"omitempty"`
		CompanyID     int64                    `validate:"omitempty,gt=0"`
		Status        entity.WorkerStatus      `validate:"omitempty,gt=0"`
		Certificates  []WorkerCertificateInput `validate:"omitempty,max=50,dive"`
	}
)

func (s *Usecase) WorkerCreate(ctx context.Context, in WorkerCreateInput) error {
	ctx, span := s.startSpan(ctx, "WorkerCreate")
	defer span.End()

	in.CodiceFiscale = strings.ToUpper(strings.TrimSpace(in.CodiceFiscale))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryWorkers, constant.PermActCreate)
	if err != nil {
		return err
	}

	status := in.Status
	if status.IsUnknown() {
		status = entity.WorkerStatusActive
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

	worker := entity.NewWorker{
		ID:            s.uid.Generate(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		CodiceFiscale: in.CodiceFiscale,
		Email:         strings.TrimSpace(strings.ToLower(in.Email)),
		Phone:         strings.TrimSpace(in.Phone),
		BirthDate:     in.BirthDate,
		CompanyID:     in.CompanyID,
		Status:        status,
		Certificates:  certs,
		CreatedBy:     clm.UserID,
	}

	if err := s.repoDB.CreateWorker(ctx, worker); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("worker with this codice fiscale already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create worker", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
