package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the root of every input validation error.
	ErrValidation = errors.New("validation failed")

	ErrInvalidDescription = fmt.Errorf("%w: invalid description", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: invalid amount", ErrValidation)
	ErrInvalidGoal        = fmt.Errorf("%w: invalid goal value", ErrValidation)
	ErrInvalidTheme       = fmt.Errorf("%w: invalid theme", ErrValidation)
	ErrInvalidView        = fmt.Errorf("%w: invalid view", ErrValidation)
	ErrInvalidAction      = fmt.Errorf("%w: invalid savings action", ErrValidation)

	// Savings errors
	ErrInsufficientFunds = errors.New("withdrawal exceeds current savings")

	// ErrOutOfBounds is the root of addressing errors for edit and delete.
	ErrOutOfBounds         = errors.New("transaction out of bounds")
	ErrTransactionNotFound = fmt.Errorf("%w: transaction not found", ErrOutOfBounds)
	ErrIndexOutOfRange     = fmt.Errorf("%w: index out of range", ErrOutOfBounds)

	// Storage errors
	ErrStorageCorrupt = errors.New("persisted data is corrupt")
	ErrPersistence    = errors.New("failed to persist ledger")

	ErrNoPendingEdit = errors.New("no edit in progress")
)
