package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/clock"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/config"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/goroutine"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/idempotency"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/instrument"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/messaging"
	"github.com/PC8-Cloud/GestCert-sub000/internal/pkg/uid"
	"github.com/PC8-Cloud/GestCert-sub000/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	idem idempotency.Idempotency,
	clk clock.Clocker,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, idem: idem, clock: clk, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.alerting.consumer_names")

	var consumers = []struct {
		name               string
		topic              string // destination where publisher sent message
		nsqConsumerName    string // for nsq
		natsConsumerName   string // for nats
		kafkaConsumerName  string // for kafka
		pubsubConsumerName string // for google pubusb
		handler            messaging.Handler
	}{
		{
			name:               event.ExpiryRunConsumerAlerting,
			topic:              event.ExpiryRunDestination,
			nsqConsumerName:    event.ExpiryRunConsumerAlerting,
			natsConsumerName:   event.ExpiryRunConsumerAlerting,
			kafkaConsumerName:  event.ExpiryRunConsumerAlerting,
			pubsubConsumerName: event.ExpiryRunConsumerAlerting,
			handler:            mqHandler.ExpiryRun,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.nsqConsumerName),
					messaging.WithQueueGroup(consumer.natsConsumerName),
					messaging.WithGroup(consumer.kafkaConsumerName),
					messaging.WithSubscription(consumer.pubsubConsumerName),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(1),
					messaging.WithMaxInFlight(1),
				)
			})
		}
	}
}
