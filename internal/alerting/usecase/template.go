package usecase

import (
	"context"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type TemplateGetInput struct {
	Key string
}

type TemplateOutput struct {
	Template entity.Template
}

func (s *Usecase) TemplateGet(ctx context.Context, in TemplateGetInput) (*TemplateOutput, error) {
	ctx, span := s.startSpan(ctx, "TemplateGet")
	defer span.End()

	key, ok := entity.ParseTemplateKey(in.Key)
	if !ok {
		return nil, goerror.NewInvalidInput(nil, "key", "must be one of: user_expiry, operator_digest")
	}

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermAlertingTemplates, constant.PermActRead); err != nil {
		return nil, err
	}

	tpl, err := s.loadTemplate(ctx, key)
	if err != nil {
		return nil, err
	}

	return &TemplateOutput{Template: tpl}, nil
}

type TemplateUpdateInput struct {
	Key     string
	Subject string `validate:"required,min=3,max=200"`
	Body    string `validate:"required,min=3,max=10000"`
}

func (s *Usecase) TemplateUpdate(ctx context.Context, in TemplateUpdateInput) error {
	ctx, span := s.startSpan(ctx, "TemplateUpdate")
	defer span.End()

	key, ok := entity.ParseTemplateKey(in.Key)
	if !ok {
		return goerror.NewInvalidInput(nil, "key", "must be one of: user_expiry, operator_digest")
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermAlertingTemplates, constant.PermActUpdate)
	if err != nil {
		return err
	}

	tpl := entity.Template{Key: key, Subject: in.Subject, Body: in.Body}
	if err := s.repoDB.SaveTemplate(ctx, tpl, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo save template", "key", key.String(), "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
