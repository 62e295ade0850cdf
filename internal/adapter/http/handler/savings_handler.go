package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

// SavingsService defines the behavior needed by SavingsHandler.
type SavingsService interface {
	Deposit(ctx context.Context, amount decimal.Decimal) (*domain.Transaction, error)
	Withdraw(ctx context.Context, amount decimal.Decimal) (*domain.Transaction, error)
}

// SavingsHandler handles savings deposits and withdrawals.
type SavingsHandler struct {
	ledgerUC SavingsService
}

// NewSavingsHandler creates a new SavingsHandler.
func NewSavingsHandler(ledgerUC SavingsService) *SavingsHandler {
	return &SavingsHandler{ledgerUC: ledgerUC}
}

// Deposit moves money into savings.
func (h *SavingsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.ledgerUC.Deposit, "failed to deposit")
}

// Withdraw moves money out of savings.
func (h *SavingsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.ledgerUC.Withdraw, "failed to withdraw")
}

func (h *SavingsHandler) move(
	w http.ResponseWriter,
	r *http.Request,
	op func(context.Context, decimal.Decimal) (*domain.Transaction, error),
	failure string,
) {
	var req dto.AmountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := op(r.Context(), req.Amount)
	if err != nil {
		writeError(w, mapDomainError(err), failure, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(tx))
}
