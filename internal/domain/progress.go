package domain

import "github.com/shopspring/decimal"

// SpendingStatus describes where expenses stand against the limit.
type SpendingStatus string

const (
	StatusWithinLimit SpendingStatus = "within limit"
	StatusExceeded    SpendingStatus = "exceeded"
)

var hundred = decimal.NewFromInt(100)

// SpendingProgress is the spending-limit indicator.
type SpendingProgress struct {
	Limit     decimal.Decimal
	Percent   decimal.Decimal
	Remaining decimal.Decimal
	Status    SpendingStatus
}

// SavingsProgress is the savings-goal indicator.
type SavingsProgress struct {
	Target    decimal.Decimal
	Percent   decimal.Decimal
	Remaining decimal.Decimal
	Reached   bool
}

// SpendingProgressFor measures expenses against limit. A non-positive limit
// counts as already exceeded.
func SpendingProgressFor(totals Totals, limit decimal.Decimal) SpendingProgress {
	remaining := limit.Sub(totals.Expense)

	if !limit.IsPositive() {
		return SpendingProgress{
			Limit:     limit,
			Percent:   hundred,
			Remaining: remaining,
			Status:    StatusExceeded,
		}
	}

	status := StatusExceeded
	if remaining.IsPositive() {
		status = StatusWithinLimit
	}

	return SpendingProgress{
		Limit:     limit,
		Percent:   percentOf(totals.Expense, limit),
		Remaining: remaining,
		Status:    status,
	}
}

// SavingsProgressFor measures savings against target. The percent never
// drops below zero, even when withdrawals exceed deposits.
func SavingsProgressFor(totals Totals, target decimal.Decimal) SavingsProgress {
	remaining := decimal.Max(target.Sub(totals.Savings), decimal.Zero)

	if !target.IsPositive() {
		return SavingsProgress{
			Target:    target,
			Percent:   hundred,
			Remaining: remaining,
			Reached:   true,
		}
	}

	percent := decimal.Max(percentOf(totals.Savings, target), decimal.Zero)

	return SavingsProgress{
		Target:    target,
		Percent:   percent,
		Remaining: remaining,
		Reached:   percent.Equal(hundred),
	}
}

// percentOf returns value/whole as a percentage, capped at 100.
func percentOf(value, whole decimal.Decimal) decimal.Decimal {
	p := value.Div(whole).Mul(hundred).Round(2)
	return decimal.Min(p, hundred)
}
