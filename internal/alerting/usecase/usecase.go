package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/clock"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/config"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goerror"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/jwt"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/mail"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"
)

type repoDB interface {
	GetSettings(ctx context.Context) (*entity.Settings, error)
	SaveSettings(ctx context.Context, settings entity.Settings, byID int64) error
	UpdateLastSentDate(ctx context.Context, date string) error

	GetTemplate(ctx context.Context, key entity.TemplateKey) (*entity.Template, error)
	SaveTemplate(ctx context.Context, tpl entity.Template, byID int64) error

	GetCandidates(ctx context.Context) ([]entity.Candidate, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	ins       instrument.Instrumentation
	enforcer  *casbin.Enforcer
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		enforcer:  dep.Enforcer,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("alerting.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Subject, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.Subject, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// loadSettings falls back to the defaults when no settings row exists yet.
func (s *Usecase) loadSettings(ctx context.Context) (entity.Settings, error) {
	settings, err := s.repoDB.GetSettings(ctx)
	if errors.Is(err, goerror.ErrNotFound) {
		return entity.DefaultSettings(), nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get settings", "error", err)
		return entity.Settings{}, goerror.NewServer(err)
	}
	return *settings, nil
}

// loadTemplate falls back to the built-in rendering when no row was saved for
// the key.
func (s *Usecase) loadTemplate(ctx context.Context, key entity.TemplateKey) (entity.Template, error) {
	tpl, err := s.repoDB.GetTemplate(ctx, key)
	if errors.Is(err, goerror.ErrNotFound) {
		def, ok := entity.DefaultTemplate(key)
		if !ok {
			return entity.Template{}, goerror.NewBusiness("template not found", goerror.CodeNotFound)
		}
		return def, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get template", "key", key.String(), "error", err)
		return entity.Template{}, goerror.NewServer(err)
	}
	return *tpl, nil
}
