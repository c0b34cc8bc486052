package worker

import "time"

// DefaultJobTimeout bounds a single job run when none is configured
const DefaultJobTimeout = 2 * time.Minute

// Log messages
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerJobDropped  = "Worker queue full, job dropped"
	LogMsgWorkerPoolStopped = "Worker pool stopped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
