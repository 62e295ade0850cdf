package handler

import (
	"context"
	"net/http"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

// LedgerService defines the ledger-wide operations.
type LedgerService interface {
	ResetMonth(ctx context.Context) error
	Transactions() []domain.Transaction
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// ResetMonth discards everything but savings movements and returns what is left.
func (h *LedgerHandler) ResetMonth(w http.ResponseWriter, r *http.Request) {
	if err := h.ledgerUC.ResetMonth(r.Context()); err != nil {
		writeError(w, mapDomainError(err), "failed to reset month", err.Error())
		return
	}

	records := h.ledgerUC.Transactions()

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(records),
		Total:        len(records),
	})
}
