package event

const ExpiryRunDestination string = "alerting.expiry.run"
const ExpiryRunConsumerAlerting string = "alerting.expiry.run.worker"

type ExpiryRunMessage struct {
	TriggeredAt string `json:"triggered_at"`
}
