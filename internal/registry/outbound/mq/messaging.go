package mq

import (
	"context"
	"encoding/json"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/messaging"
	"github.com/PC8-Cloud/GestCert-sub000/internal/registry/usecase"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishWorkersImported(ctx context.Context, msg usecase.WorkersImportedEvent) error {
	ctx, span := m.ins.Tracer("registry.outbound.mq").Start(ctx, "PublishWorkersImported")
	defer span.End()

	body, err := json.Marshal(event.WorkersImportedMessage{
		OperatorID: msg.OperatorID,
		Created:    msg.Created,
		Updated:    msg.Updated,
		Failed:     msg.Failed,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.WorkersImportedDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
