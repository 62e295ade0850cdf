package usecase

import "time"

// Storage keys. Each value is persisted independently.
const (
	KeyTransactions  = "transactions"
	KeyTheme         = "theme"
	KeySpendingLimit = "spending_limit"
	KeySavingsTarget = "savings_target"
)

const (
	// DepositDescription and WithdrawalDescription label savings movements.
	DepositDescription    = "Savings Deposit"
	WithdrawalDescription = "Savings Withdrawal"

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)

// Operation names reported to the Recorder.
const (
	OpAdd        = "add"
	OpEdit       = "edit"
	OpDelete     = "delete"
	OpResetMonth = "reset_month"
	OpDeposit    = "deposit"
	OpWithdraw   = "withdraw"
	OpSetLimit   = "set_spending_limit"
	OpSetTarget  = "set_savings_target"
	OpSetTheme   = "set_theme"
)
