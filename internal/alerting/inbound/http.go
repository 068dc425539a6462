package inbound

import (
	"context"

	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/usecase"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/router"
)

type uc interface {
	SettingsGet(ctx context.Context) (*usecase.SettingsOutput, error)
	SettingsUpdate(ctx context.Context, in usecase.SettingsUpdateInput) error

	TemplateGet(ctx context.Context, in usecase.TemplateGetInput) (*usecase.TemplateOutput, error)
	TemplateUpdate(ctx context.Context, in usecase.TemplateUpdateInput) error

	Run(ctx context.Context, in usecase.RunInput) (*usecase.RunOutput, error)
	RunScheduled(ctx context.Context) (*usecase.RunOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Notification Settings
	r.GET("/api/v1/alerting/settings", end.SettingsGet)
	r.PUT("/api/v1/alerting/settings", end.SettingsUpdate)

	// Email Templates
	r.GET("/api/v1/alerting/templates/:key", end.TemplateGet)
	r.PUT("/api/v1/alerting/templates/:key", end.TemplateUpdate)

	// Notification Run
	r.POST("/api/v1/alerting/run", end.Run)
}
