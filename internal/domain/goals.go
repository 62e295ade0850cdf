package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Goal defaults
var (
	DefaultSpendingLimit = decimal.NewFromInt(10000)
	DefaultSavingsTarget = decimal.NewFromInt(1)
)

// Goals holds the user's spending limit and savings target.
type Goals struct {
	SpendingLimit decimal.Decimal
	SavingsTarget decimal.Decimal
}

// DefaultGoals returns the goals used before the user sets any.
func DefaultGoals() Goals {
	return Goals{
		SpendingLimit: DefaultSpendingLimit,
		SavingsTarget: DefaultSavingsTarget,
	}
}

// Theme is the display theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme is used when no preference is stored.
const DefaultTheme = ThemeLight

// ParseTheme parses a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// SavingsAction names a savings movement.
type SavingsAction string

const (
	ActionDeposit    SavingsAction = "Deposit"
	ActionWithdrawal SavingsAction = "Withdrawal"
)

// ParseSavingsAction parses a savings action name, ignoring case.
func ParseSavingsAction(s string) (SavingsAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "deposit":
		return ActionDeposit, nil
	case "withdrawal", "withdraw":
		return ActionWithdrawal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// Summary is everything the presentation layer needs for one view.
type Summary struct {
	Transactions []Transaction
	Totals       Totals
	Spending     SpendingProgress
	Savings      SavingsProgress
	Goals        Goals
}

// Summarize aggregates records against goals.
func Summarize(records []Transaction, goals Goals) Summary {
	totals := ComputeTotals(records)
	return Summary{
		Transactions: records,
		Totals:       totals,
		Spending:     SpendingProgressFor(totals, goals.SpendingLimit),
		Savings:      SavingsProgressFor(totals, goals.SavingsTarget),
		Goals:        goals,
	}
}
