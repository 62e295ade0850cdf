package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals is the aggregate of a snapshot of records.
type Totals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Savings    decimal.Decimal
	Balance    decimal.Decimal
	Categories map[string]decimal.Decimal
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	Category string
	Amount   decimal.Decimal
}

// ComputeTotals aggregates records. Savings movements go only to the savings
// accumulator, so a deposit is never income and a withdrawal is never an
// expense. Balance is the free wallet amount: income - expense - savings.
func ComputeTotals(records []Transaction) Totals {
	totals := Totals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Savings:    decimal.Zero,
		Categories: make(map[string]decimal.Decimal),
	}

	for _, r := range records {
		switch r.Kind {
		case KindSavings:
			totals.Savings = totals.Savings.Add(r.Amount)
		case KindIncome:
			totals.Income = totals.Income.Add(r.Amount)
		default:
			abs := r.Amount.Abs()
			totals.Expense = totals.Expense.Add(abs)
			totals.Categories[r.Category] = totals.Categories[r.Category].Add(abs)
		}
	}

	totals.Balance = totals.Income.Sub(totals.Expense).Sub(totals.Savings)

	return totals
}

// CategoryBreakdown returns the expense categories, largest first.
func (t Totals) CategoryBreakdown() []CategoryAmount {
	result := make([]CategoryAmount, 0, len(t.Categories))
	for c, amount := range t.Categories {
		result = append(result, CategoryAmount{Category: c, Amount: amount})
	}

	sort.Slice(result, func(i, j int) bool {
		if cmp := result[i].Amount.Cmp(result[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return result[i].Category < result[j].Category
	})

	return result
}
