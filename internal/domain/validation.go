package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation constants
const (
	MaxDescriptionLength = 200
	MaxAmount            = "1000000000000" // 1 trillion
)

var maxAmount = decimal.RequireFromString(MaxAmount)

// ValidateDescription validates a transaction description.
func ValidateDescription(desc string) error {
	desc = strings.TrimSpace(desc)

	if desc == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidDescription)
	}

	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidDescription, MaxDescriptionLength)
	}

	return nil
}

// ValidateAmount validates a signed transaction amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: amount cannot be zero", ErrInvalidAmount)
	}

	if amount.Abs().GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxAmount)
	}

	return nil
}

// ValidatePositiveAmount validates a deposit or withdrawal amount.
func ValidatePositiveAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}

	return ValidateAmount(amount)
}

// ValidateGoalValue validates a spending limit or savings target.
func ValidateGoalValue(value decimal.Decimal) error {
	if value.IsNegative() {
		return fmt.Errorf("%w: value cannot be negative", ErrInvalidGoal)
	}

	return nil
}

// ParseAmount parses a user-supplied amount string.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}

	return d, nil
}

// ParseGoalValue parses and validates a goal value. Non-finite inputs such as
// "NaN" or "Inf" are not decimals and are rejected here.
func ParseGoalValue(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidGoal, s)
	}

	if err := ValidateGoalValue(d); err != nil {
		return decimal.Zero, err
	}

	return d, nil
}
