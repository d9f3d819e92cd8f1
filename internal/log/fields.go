package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldDataFile   = "data_file"
	FieldBackend    = "backend"
	FieldClubs      = "clubs"
	FieldSkipped    = "skipped"
	FieldClubName   = "club_name"
	FieldState      = "state"
	FieldDuesCents  = "dues_cents"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentDataset   = "dataset"
	ComponentDirectory = "directory"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentScraper   = "scraper"
	ComponentSheets    = "sheets"
	ComponentCache     = "cache"
)
