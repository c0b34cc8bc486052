package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Storage Metrics
var (
	StatementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameStatementDuration,
			Help:    HelpTextStatementDuration,
			Buckets: StatementLatencyBuckets,
		},
		[]string{LabelOperation},
	)

	SlowStatements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSlowStatements,
			Help: HelpTextSlowStatements,
		},
		[]string{LabelOperation},
	)

	ReportedErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameReportedErrors,
			Help: HelpTextReportedErrors,
		},
		[]string{LabelOperation, LabelKind},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Business Metrics
var (
	LedgerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLedgerMutations,
			Help: HelpTextLedgerMutations,
		},
		[]string{LabelOperation, LabelResult},
	)

	InventoryOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameInventoryOperations,
			Help: HelpTextInventoryOperations,
		},
		[]string{LabelOperation, LabelResult},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	SpawnedVehicles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameSpawnedVehicles,
			Help: HelpTextSpawnedVehicles,
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLogins,
			Help: HelpTextLogins,
		},
		[]string{LabelResult},
	)

	SaveRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSaveRuns,
			Help: HelpTextSaveRuns,
		},
		[]string{LabelJob, LabelResult},
	)

	SaveRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSaveRunDuration,
			Help:    HelpTextSaveRunDuration,
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelJob},
	)

	JobsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsDropped,
			Help: HelpTextJobsDropped,
		},
	)
)

// Result label values
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRejected = "rejected"
)
