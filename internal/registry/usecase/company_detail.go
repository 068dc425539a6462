package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type CompanyDetailInput struct {
	ID int64
}

type CompanyDetailOutput struct {
	Company entity.Company
}

func (s *Usecase) CompanyDetail(ctx context.Context, in CompanyDetailInput) (*CompanyDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "CompanyDetail")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryCompanies, constant.PermActRead); err != nil {
		return nil, err
	}

	company, err := s.repoDB.GetCompanyByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		return nil, goerror.NewBusiness("company not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get company", "company_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CompanyDetailOutput{Company: *company}, nil
}
