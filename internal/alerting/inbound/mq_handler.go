package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/clock"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/idempotency"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/messaging"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/uid"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc    uc
	uuid  uid.StringID
	idem  idempotency.Idempotency
	clock clock.Clocker
	ins   instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// ExpiryRun handles the daily scheduler tick. The Redis guard keeps two
// concurrent ticks from starting two runs; the LastSentDate comparison inside
// the run stays the authoritative once-per-day check.
func (h *MQHandler) ExpiryRun(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("alerting.inbound.mq").Start(ctx, "ExpiryRun")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: expiry run tick", "msg_body", string(body))

	var payload event.ExpiryRunMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of expiry run tick", "msg_body", string(body), "error", err)
		return nil
	}

	slog.InfoContext(ctx, "starting scheduled expiry run", "triggered_at", payload.TriggeredAt)

	key := "alerting:run:" + h.clock.Now().UTC().Format(time.DateOnly)
	err := h.idem.Exec(ctx, key, func(ctx context.Context) error {
		out, err := h.uc.RunScheduled(ctx)
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "scheduled expiry run finished", "message", out.Message, "sent", out.Sent)
		return nil
	}, idempotency.WithStateTTL(25*time.Hour))

	if errors.Is(err, idempotency.ErrAlreadyInProgress) || errors.Is(err, idempotency.ErrAlreadyCompleted) {
		slog.InfoContext(ctx, "scheduled expiry run skipped", "key", key, "reason", err)
		return nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to consume expiry run tick", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
