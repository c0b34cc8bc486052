package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Storage metric names
const (
	MetricNameStatementDuration = "db_statement_duration_seconds"
	MetricNameSlowStatements    = "db_slow_statements_total"
	MetricNameReportedErrors    = "reported_errors_total"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameLedgerMutations     = "ledger_mutations_total"
	MetricNameInventoryOperations = "inventory_operations_total"
	MetricNameActiveSessions      = "sessions_active"
	MetricNameSpawnedVehicles     = "vehicles_spawned"
	MetricNameLogins              = "logins_total"
	MetricNameSaveRuns            = "save_runs_total"
	MetricNameSaveRunDuration     = "save_run_duration_seconds"
	MetricNameJobsDropped         = "worker_jobs_dropped_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"

	HelpTextStatementDuration = "Database statement latency in seconds"
	HelpTextSlowStatements    = "Statements slower than the configured threshold"
	HelpTextReportedErrors    = "Errors reported to the observability collaborator"

	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"

	HelpTextLedgerMutations     = "Ledger mutations by operation and outcome"
	HelpTextInventoryOperations = "Inventory operations by operation and outcome"
	HelpTextActiveSessions      = "Player sessions currently active"
	HelpTextSpawnedVehicles     = "Vehicles currently tracked as spawned"
	HelpTextLogins              = "Login attempts by outcome"
	HelpTextSaveRuns            = "Periodic save runs by job and outcome"
	HelpTextSaveRunDuration     = "Duration of periodic save runs in seconds"
	HelpTextJobsDropped         = "Background jobs dropped because the queue was full"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelOperation = "operation"
	LabelKind      = "kind"
	LabelResult    = "result"
	LabelJob       = "job"
)

// ============================================================================
// Buckets
// ============================================================================

var (
	HTTPLatencyBuckets      = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	StatementLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}
)

// Log messages
const (
	LogMsgMetricsRecorded = "Event metrics recorded"
)
