package usecase

import (
	"context"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type CompanyListInput struct {
	Search string
	Size   int32
	Page   int32
}

type CompanyListOutput struct {
	Page      int32
	Size      int32
	Total     int64
	Companies []entity.Company
}

func (s *Usecase) CompanyList(ctx context.Context, in CompanyListInput) (*CompanyListOutput, error) {
	ctx, span := s.startSpan(ctx, "CompanyList")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryCompanies, constant.PermActRead); err != nil {
		return nil, err
	}

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}

	companies, count, err := s.repoDB.GetCompanyList(ctx, in.Search, in.Size, (max(in.Page, 1)-1)*in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list companies", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CompanyListOutput{
		Page:      max(in.Page, 1),
		Size:      in.Size,
		Total:     count,
		Companies: companies,
	}, nil
}
