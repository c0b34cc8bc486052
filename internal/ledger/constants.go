package ledger

// Operation labels, used for reporting and metrics
const (
	OpAdjustCash         = "ledger.adjust_cash"
	OpAdjustBank         = "ledger.adjust_bank"
	OpTransferBankToCash = "ledger.bank_to_cash"
	OpTransferCashToBank = "ledger.cash_to_bank"
	OpTransfer           = "ledger.transfer"
	OpSetBalance         = "ledger.set_balance"
)

// Log messages
const (
	LogMsgBalanceChanged = "Balance changed"
	LogMsgTransferDone   = "Cash transferred between players"
)
