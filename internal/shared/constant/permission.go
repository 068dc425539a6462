package constant

// Casbin objects.
const (
	PermRegistryWorkers   = "registry:workers"
	PermRegistryCompanies = "registry:companies"
	PermRegistryDashboard = "registry:dashboard"
	PermAlertingSettings  = "alerting:settings"
	PermAlertingTemplates = "alerting:templates"
	PermAlertingRun       = "alerting:run"
)

// Casbin actions.
const (
	PermActRead    = "read"
	PermActCreate  = "create"
	PermActUpdate  = "update"
	PermActDelete  = "delete"
	PermActExecute = "execute"
)
