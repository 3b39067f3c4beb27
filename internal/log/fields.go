package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
	FieldOperation   = "operation"
	FieldOwner       = "owner"
	FieldTransaction = "transaction_id"
	FieldYear        = "year"
	FieldMonth       = "month"
	FieldCount       = "count"
	FieldBackend     = "backend"
)

// Components defines standard component names.
const (
	ComponentApp    = "app"
	ComponentWorker = "worker"
)
