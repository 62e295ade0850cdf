package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSpendingProgressFor(t *testing.T) {
	tests := []struct {
		name          string
		expense       int64
		limit         int64
		wantPercent   int64
		wantRemaining int64
		wantStatus    SpendingStatus
	}{
		{
			name:          "within limit",
			expense:       8000,
			limit:         10000,
			wantPercent:   80,
			wantRemaining: 2000,
			wantStatus:    StatusWithinLimit,
		},
		{
			name:          "exactly at limit is exceeded",
			expense:       10000,
			limit:         10000,
			wantPercent:   100,
			wantRemaining: 0,
			wantStatus:    StatusExceeded,
		},
		{
			name:          "over limit is capped at 100",
			expense:       25000,
			limit:         10000,
			wantPercent:   100,
			wantRemaining: -15000,
			wantStatus:    StatusExceeded,
		},
		{
			name:          "zero limit never divides",
			expense:       8000,
			limit:         0,
			wantPercent:   100,
			wantRemaining: -8000,
			wantStatus:    StatusExceeded,
		},
		{
			name:          "negative limit",
			expense:       0,
			limit:         -5,
			wantPercent:   100,
			wantRemaining: -5,
			wantStatus:    StatusExceeded,
		},
		{
			name:          "no expenses",
			expense:       0,
			limit:         10000,
			wantPercent:   0,
			wantRemaining: 10000,
			wantStatus:    StatusWithinLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Totals{Expense: decimal.NewFromInt(tt.expense)}

			got := SpendingProgressFor(totals, decimal.NewFromInt(tt.limit))

			assert.True(t, got.Percent.Equal(decimal.NewFromInt(tt.wantPercent)), "percent: got %s", got.Percent)
			assert.True(t, got.Remaining.Equal(decimal.NewFromInt(tt.wantRemaining)), "remaining: got %s", got.Remaining)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestSavingsProgressFor(t *testing.T) {
	tests := []struct {
		name        string
		savings     string
		target      string
		wantPercent string
		wantReached bool
	}{
		{name: "halfway", savings: "500", target: "1000", wantPercent: "50"},
		{name: "fractional percent rounds", savings: "1", target: "3", wantPercent: "33.33"},
		{name: "reached", savings: "1500", target: "1000", wantPercent: "100", wantReached: true},
		{name: "negative savings clamps at zero", savings: "-200", target: "1000", wantPercent: "0"},
		{name: "default sentinel target", savings: "1", target: "1", wantPercent: "100", wantReached: true},
		{name: "zero target", savings: "0", target: "0", wantPercent: "100", wantReached: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := Totals{Savings: decimal.RequireFromString(tt.savings)}

			got := SavingsProgressFor(totals, decimal.RequireFromString(tt.target))

			assert.True(t, got.Percent.Equal(decimal.RequireFromString(tt.wantPercent)), "percent: got %s", got.Percent)
			assert.Equal(t, tt.wantReached, got.Reached)
			assert.False(t, got.Remaining.IsNegative(), "remaining must not be negative")
		})
	}
}

func TestSummarize(t *testing.T) {
	records := []Transaction{
		record("Salary", 5000, "Income"),
		record("Rent", -8000, "Housing"),
		record("Deposit", 250, SavingsCategory),
	}

	s := Summarize(records, Goals{
		SpendingLimit: decimal.NewFromInt(10000),
		SavingsTarget: decimal.NewFromInt(1000),
	})

	assert.Len(t, s.Transactions, 3)
	assert.True(t, s.Spending.Percent.Equal(decimal.NewFromInt(80)))
	assert.Equal(t, StatusWithinLimit, s.Spending.Status)
	assert.True(t, s.Savings.Percent.Equal(decimal.NewFromInt(25)))
	assert.True(t, s.Totals.Balance.Equal(decimal.NewFromInt(-3250)))
}
