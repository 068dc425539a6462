package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type CompanyUpdateInput struct {
	ID       int64  `validate:"required,gt=0"`
	Name     string `validate:"required,min=2,max=150"`
	City     string `validate:"omitempty,min=2,max=100"`
	Province string `validate:"omitempty,len=2,uppercase"`
}

func (s *Usecase) CompanyUpdate(ctx context.Context, in CompanyUpdateInput) error {
	ctx, span := s.startSpan(ctx, "CompanyUpdate")
	defer span.End()

	in.Province = strings.ToUpper(strings.TrimSpace(in.Province))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryCompanies, constant.PermActUpdate)
	if err != nil {
		return err
	}

	patch := entity.PatchCompany{
		ID:        in.ID,
		Name:      strings.TrimSpace(in.Name),
		City:      strings.TrimSpace(in.City),
		Province:  in.Province,
		UpdatedBy: clm.UserID,
	}

	if err := s.repoDB.UpdateCompany(ctx, patch); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("company not found", goerror.CodeNotFound)
		}
		slog.ErrorContext(ctx, "failed to repo update company", "company_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
