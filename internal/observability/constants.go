package observability

// Error kind labels
const (
	KindNotFound             = "not_found"
	KindInsufficientFunds    = "insufficient_funds"
	KindInsufficientQuantity = "insufficient_quantity"
	KindInvalidInput         = "invalid_input"
	KindDuplicate            = "duplicate"
	KindConnectivity         = "connectivity"
	KindTransactionAborted   = "transaction_aborted"
	KindCanceled             = "canceled"
	KindInternal             = "internal"
)

// Log messages
const (
	LogMsgOperationFailed   = "Operation failed"
	LogMsgOperationRejected = "Operation rejected"
	LogMsgSlowOperation     = "Slow operation"
)

// DefaultRecentSize is the number of reports Recent keeps when no size is given
const DefaultRecentSize = 200
