package app

import (
	"log/slog"
	"os"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.registry.enabled") {
		if err := registry.New(registry.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UID:        a.uid,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			DBConn:     a.dbConn,
			Messaging:  a.messaging,
			Storage:    a.storage,
			Enforcer:   a.casbin,
		}); err != nil {
			slog.Error("failed to init module registry", "error", err)
			os.Exit(1)
		}
	}

	if a.config.GetBool("modules.alerting.enabled") {
		if err := alerting.New(a.ctx, alerting.Dependency{
			DBConn:      a.dbConn,
			Goroutine:   a.goroutine,
			Enforcer:    a.casbin,
			Router:      a.router,
			Idempotency: a.idemp,
			Messaging:   a.messaging,
			Mail:        a.mail,
			Config:      a.config,
			Instrument:  a.ins,
			UUID:        a.uuid,
			Clock:       a.clock,
			Validator:   a.validator,
		}); err != nil {
			slog.Error("failed to init module alerting", "error", err)
			os.Exit(1)
		}
	}
}
