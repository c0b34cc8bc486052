package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// DefaultSlowThreshold is used when no slow-statement threshold is configured
	DefaultSlowThreshold = 500 * time.Millisecond

	maxLabelLength = 80
)

// PostgreSQL error codes
const (
	PgCodeUniqueViolation     = "23505"
	PgCodeForeignKeyViolation = "23503"
	PgCodeNumericOutOfRange   = "22003"
)

// OpPing labels reported ping failures
const OpPing = "database.ping"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString    = "failed to parse connection string"
	ErrMsgFailedToCreatePool         = "failed to create connection pool"
	ErrMsgFailedToPingDatabase       = "failed to ping database"
	ErrMsgFailedToBeginTransaction   = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction  = "failed to commit transaction"
	ErrMsgPanicInTransaction         = "panic in transaction"
	ErrMsgFailedToApplyMigrations    = "failed to apply migrations"
	ErrMsgFailedToSetMigrateDialect  = "failed to set migration dialect"
	ErrMsgFailedToReadMigrateVersion = "failed to read migration version"
	ErrMsgClosedPool                 = "closed pool"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgFailedToRollback                = "Failed to rollback transaction"
	LogMsgMigrationsApplied               = "Database migrations applied"
)
