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

type CompanyCreateInput struct {
	Name      string `validate:"required,min=2,max=150"`
	VATNumber string `validate:"required,partita_iva"`
	City      string `validate:"omitempty,min=2,max=100"`
	Province  string `validate:"omitempty,len=2,uppercase"`
}

func (s *Usecase) CompanyCreate(ctx context.Context, in CompanyCreateInput) error {
	ctx, span := s.startSpan(ctx, "CompanyCreate")
	defer span.End()

	in.Province = strings.ToUpper(strings.TrimSpace(in.Province))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermRegistryCompanies, constant.PermActCreate)
	if err != nil {
		return err
	}

	company := entity.NewCompany{
		ID:        s.uid.Generate(),
		Name:      strings.TrimSpace(in.Name),
		VATNumber: strings.TrimSpace(in.VATNumber),
		City:      strings.TrimSpace(in.City),
		Province:  in.Province,
		CreatedBy: clm.UserID,
	}

	if err := s.repoDB.CreateCompany(ctx, company); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			return goerror.NewBusiness("company with this VAT number already exists", goerror.CodeConflict)
		}
		slog.ErrorContext(ctx, "failed to repo create company", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
