package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

type ledgerServiceStub struct {
	resetFn func(ctx context.Context) error
	records []domain.Transaction
}

func (s *ledgerServiceStub) ResetMonth(ctx context.Context) error {
	return s.resetFn(ctx)
}

func (s *ledgerServiceStub) Transactions() []domain.Transaction {
	return s.records
}

func TestLedgerHandler_ResetMonth(t *testing.T) {
	stub := &ledgerServiceStub{
		records: []domain.Transaction{
			{ID: "tx-1", Description: "Salary", Kind: domain.KindIncome, Amount: decimal.NewFromInt(100)},
			{ID: "tx-2", Description: "Deposit", Category: domain.SavingsCategory, Kind: domain.KindSavings, Amount: decimal.NewFromInt(50)},
		},
	}
	stub.resetFn = func(ctx context.Context) error {
		stub.records = stub.records[1:]
		return nil
	}
	handler := NewLedgerHandler(stub)

	rec := httptest.NewRecorder()
	handler.ResetMonth(rec, httptest.NewRequest(http.MethodPost, "/ledger/reset-month", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListTransactionsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Transactions[0].Kind != domain.KindSavings {
		t.Fatalf("expected only the savings record, got %+v", resp)
	}
}

func TestLedgerHandler_ResetMonth_PersistFailure(t *testing.T) {
	handler := NewLedgerHandler(&ledgerServiceStub{
		resetFn: func(ctx context.Context) error {
			return errors.Join(domain.ErrPersistence, errors.New("disk full"))
		},
	})

	rec := httptest.NewRecorder()
	handler.ResetMonth(rec, httptest.NewRequest(http.MethodPost, "/ledger/reset-month", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
