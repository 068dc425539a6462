package alerting

import (
	"context"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/inbound"
	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/outbound/db"
	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/outbound/email"
	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/usecase"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/clock"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/config"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goroutine"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/idempotency"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/mail"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/messaging"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/router"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/uid"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Mail        mail.Mail                  `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
}

func New(ctx context.Context, dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAlerting := db.NewDB(dep.DBConn, dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAlerting,
		RepoMail:   repoMail,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	inbound.RegisterMQConsumer(ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, dep.Idempotency, dep.Clock, uc, dep.Instrument)

	return nil
}
