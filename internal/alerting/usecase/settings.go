package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/constant"
)

type SettingsOutput struct {
	Settings entity.Settings
}

func (s *Usecase) SettingsGet(ctx context.Context) (*SettingsOutput, error) {
	ctx, span := s.startSpan(ctx, "SettingsGet")
	defer span.End()

	if _, err := s.authenticatedAndAuthorized(ctx, constant.PermAlertingSettings, constant.PermActRead); err != nil {
		return nil, err
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	return &SettingsOutput{Settings: settings}, nil
}

type SettingsUpdateInput struct {
	Enabled        bool
	ThresholdDays  []int  `validate:"omitempty,max=20,dive,gt=0,lte=365"`
	NotifyWorkers  bool
	NotifyOperator bool
	OperatorEmail  string `validate:"omitempty,email"`
	DailyDigest    bool
}

// SettingsUpdate saves everything except LastSentDate, which stays owned by
// the automatic run.
func (s *Usecase) SettingsUpdate(ctx context.Context, in SettingsUpdateInput) error {
	ctx, span := s.startSpan(ctx, "SettingsUpdate")
	defer span.End()

	in.OperatorEmail = strings.TrimSpace(strings.ToLower(in.OperatorEmail))
	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if in.NotifyOperator && in.OperatorEmail == "" {
		return goerror.NewInvalidInput(nil, "operator_email", "required when operator notification is on")
	}

	clm, err := s.authenticatedAndAuthorized(ctx, constant.PermAlertingSettings, constant.PermActUpdate)
	if err != nil {
		return err
	}

	settings := entity.Settings{
		Enabled:        in.Enabled,
		ThresholdDays:  entity.NormalizeThresholds(in.ThresholdDays),
		NotifyWorkers:  in.NotifyWorkers,
		NotifyOperator: in.NotifyOperator,
		OperatorEmail:  in.OperatorEmail,
		DailyDigest:    in.DailyDigest,
	}

	if err := s.repoDB.SaveSettings(ctx, settings, clm.UserID); err != nil {
		slog.ErrorContext(ctx, "failed to repo save settings", "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
