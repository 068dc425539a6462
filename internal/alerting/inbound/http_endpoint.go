package inbound

import (
	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/entity"
	"github.com/PC8-Cloud/GestCert-sub000/internal/alerting/usecase"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for notification settings, templates and
// the notification run.
type HTTPEndpoint struct {
	uc uc
}

// SettingsGet returns the notification settings, defaults when never saved.
// @Summary Notification settings
// @Tags Alerting, Settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=SettingsResponse} "Settings"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/alerting/settings [get]
func (h *HTTPEndpoint) SettingsGet(r *router.Request) (any, error) {
	resp, err := h.uc.SettingsGet(r.Context())
	if err != nil {
		return nil, err
	}

	return toSettingsResponse(resp.Settings), nil
}

// SettingsUpdate saves the notification settings.
// @Summary Update notification settings
// @Tags Alerting, Settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body SettingsUpdateRequest true "Settings payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/alerting/settings [put]
func (h *HTTPEndpoint) SettingsUpdate(r *router.Request) (any, error) {
	var req SettingsUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.SettingsUpdate(r.Context(), usecase.SettingsUpdateInput{
		Enabled:        req.Enabled,
		ThresholdDays:  req.ThresholdDays,
		NotifyWorkers:  req.NotifyWorkers,
		NotifyOperator: req.NotifyOperator,
		OperatorEmail:  req.OperatorEmail,
		DailyDigest:    req.DailyDigest,
	})
}

// TemplateGet returns one email template, the built-in default when never saved.
// @Summary Email template
// @Tags Alerting, Templates
// @Security BearerAuth
// @Produce json
// @Param key path string true "Template key (user_expiry or operator_digest)"
// @Success 200 {object} router.successResponse{data=TemplateResponse} "Template"
// @Failure 422 {object} router.errorResponse "Unknown key"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/alerting/templates/{key} [get]
func (h *HTTPEndpoint) TemplateGet(r *router.Request) (any, error) {
	resp, err := h.uc.TemplateGet(r.Context(), usecase.TemplateGetInput{Key: r.GetParam("key")})
	if err != nil {
		return nil, err
	}

	return TemplateResponse{
		Key:     resp.Template.Key.String(),
		Subject: resp.Template.Subject,
		Body:    resp.Template.Body,
	}, nil
}

// TemplateUpdate saves one email template.
// @Summary Update email template
// @Tags Alerting, Templates
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param key path string true "Template key (user_expiry or operator_digest)"
// @Param request body TemplateUpdateRequest true "Template payload"
// @Success 200 {object} router.successResponse "Updated"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/alerting/templates/{key} [put]
func (h *HTTPEndpoint) TemplateUpdate(r *router.Request) (any, error) {
	var req TemplateUpdateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	return nil, h.uc.TemplateUpdate(r.Context(), usecase.TemplateUpdateInput{
		Key:     r.GetParam("key"),
		Subject: req.Subject,
		Body:    req.Body,
	})
}

// Run triggers the notification run. The body is optional; an empty body is
// an unforced run.
// @Summary Trigger notification run
// @Description Matches every certificate against the configured thresholds and emails the affected workers, plus an optional operator summary. Unforced runs are limited to one per calendar day.
// @Tags Alerting, Run
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body RunRequest false "Run options"
// @Success 200 {object} router.successResponse{data=RunResponse} "Run outcome"
// @Failure 400 {object} router.errorResponse "Notifications disabled"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/alerting/run [post]
func (h *HTTPEndpoint) Run(r *router.Request) (any, error) {
	var req RunRequest
	if r.ContentLength != 0 {
		if err := r.DecodeBody(&req); err != nil {
			return nil, err
		}
	}

	resp, err := h.uc.Run(r.Context(), usecase.RunInput{Force: req.Force})
	if err != nil {
		return nil, err
	}

	return RunResponse{Sent: resp.Sent, message: resp.Message}, nil
}

func toSettingsResponse(s entity.Settings) SettingsResponse {
	return SettingsResponse{
		Enabled:        s.Enabled,
		ThresholdDays:  s.ThresholdDays,
		NotifyWorkers:  s.NotifyWorkers,
		NotifyOperator: s.NotifyOperator,
		OperatorEmail:  s.OperatorEmail,
		DailyDigest:    s.DailyDigest,
		LastSentDate:   s.LastSentDate,
	}
}
