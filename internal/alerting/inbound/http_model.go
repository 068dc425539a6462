package inbound

type SettingsResponse struct {
	Enabled        bool   `json:"enabled"`
	ThresholdDays  []int  `json:"threshold_days"`
	NotifyWorkers  bool   `json:"notify_workers"`
	NotifyOperator bool   `json:"notify_operator"`
	OperatorEmail  string `json:"operator_email"`
	DailyDigest    bool   `json:"daily_digest"`
	LastSentDate   string `json:"last_sent_date"`
}

type SettingsUpdateRequest struct {
	Enabled        bool   `json:"enabled"`
	ThresholdDays  []int  `json:"threshold_days"`
	NotifyWorkers  bool   `json:"notify_workers"`
	NotifyOperator bool   `json:"notify_operator"`
	OperatorEmail  string `json:"operator_email,omitempty"`
	DailyDigest    bool   `json:"daily_digest"`
}

type TemplateResponse struct {
	Key     string `json:"key"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type TemplateUpdateRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type RunRequest struct {
	Force bool `json:"force"`
}

type RunResponse struct {
	Sent int `json:"sent"`

	message string
}

func (r RunResponse) Message() string {
	return r.message
}
