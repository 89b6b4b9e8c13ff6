package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldCompany     = "company"
	FieldDatasetPath = "dataset_path"
	FieldDatasetVer  = "dataset_version"
	FieldRounds      = "rounds"
	FieldCompanies   = "companies"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentDataset = "dataset"
	ComponentSummary = "summary"
	ComponentLogos   = "logos"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpLoad      = "load"
	OpReload    = "reload"
	OpSummarize = "summarize"
	OpList      = "list"
	OpRender    = "render"
	OpStartup   = "startup"
	OpShutdown  = "shutdown"
)
