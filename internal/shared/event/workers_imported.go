package event

const WorkersImportedDestination string = "registry.workers.imported"
const WorkersImportedConsumerAlerting string = "registry.workers.imported.alerting"

type WorkersImportedMessage struct {
	OperatorID int64 `json:"operator_id"`
	Created    int   `json:"created"`
	Updated    int   `json:"updated"`
	Failed     int   `json:"failed"`
}
