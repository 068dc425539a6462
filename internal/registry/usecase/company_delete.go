package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type CompanyDeleteInput struct {
	ID int64
}

func (s *Usecase) CompanyDelete(ctx context.Context, in CompanyDeleteInput) error {
	ctx, span := s.startSpan(ctx, "CompanyDelete")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryCompanies, constant.PermActDelete); err != nil {
		return err
	}

	if err := s.repoDB.DeleteCompany(ctx, in.ID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("company not found", goerror.CodeNotFound)
		}
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("company still has registered workers", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo delete company", "company_id", in.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
