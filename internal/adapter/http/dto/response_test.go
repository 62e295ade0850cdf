package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

func TestTransactionFromDomain(t *testing.T) {
	created := time.Date(2024, 3, 9, 18, 30, 0, 0, time.UTC)
	tx := &domain.Transaction{
		ID:          "01HZX",
		Description: "Dinner",
		Category:    "Food",
		Kind:        domain.KindExpense,
		Amount:      decimal.NewFromInt(-35),
		Date:        "3/11/2024, 6:30:00 PM" + domain.EditedMarker,
		CreatedAt:   created,
	}

	got := TransactionFromDomain(tx)
	if got.ID != tx.ID || got.Kind != domain.KindExpense || !got.Edited {
		t.Fatalf("unexpected response: %+v", got)
	}

	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["amount"] != "-35" || decoded["kind"] != "expense" {
		t.Fatalf("unexpected json: %s", data)
	}
}

func TestSummaryFromDomain(t *testing.T) {
	records := []domain.Transaction{
		{ID: "1", Description: "Salary", Category: "Salary", Kind: domain.KindIncome, Amount: decimal.NewFromInt(50000)},
		{ID: "2", Description: "Rent", Category: "Housing", Kind: domain.KindExpense, Amount: decimal.NewFromInt(-8000)},
	}
	filter := domain.Filter{View: domain.ViewAll}

	got := SummaryFromDomain(filter, domain.Summarize(records, domain.DefaultGoals()))

	if got.Count != 2 || got.View != domain.ViewAll {
		t.Fatalf("unexpected summary header: %+v", got)
	}
	if !got.Totals.Balance.Equal(decimal.NewFromInt(42000)) {
		t.Fatalf("expected balance 42000, got %s", got.Totals.Balance)
	}
	if got.Spending.Status != string(domain.StatusWithinLimit) || !got.Spending.Percent.Equal(decimal.NewFromInt(80)) {
		t.Fatalf("unexpected spending progress: %+v", got.Spending)
	}
	if len(got.Totals.Categories) != 1 || got.Totals.Categories[0].Category != "Housing" {
		t.Fatalf("unexpected categories: %+v", got.Totals.Categories)
	}
}
