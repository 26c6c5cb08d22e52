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
	FieldError      = "error"
	FieldYear       = "year"
	FieldStartYear  = "start_year"
	FieldEndYear    = "end_year"
	FieldRate       = "rate"
	FieldFactor     = "factor"
	FieldVersion    = "version"
	FieldRecords    = "records"
	FieldSource     = "source"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentImport  = "import"
	ComponentBackend = "backend"
)
