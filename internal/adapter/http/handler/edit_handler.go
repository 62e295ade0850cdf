package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

// EditSessionService defines the single in-progress edit.
type EditSessionService interface {
	BeginEdit(id string) (*domain.Transaction, error)
	PendingEdit() (string, bool)
	Get(id string) (*domain.Transaction, error)
	CommitEdit(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error)
	CancelEdit()
}

// EditHandler exposes the edit session: begin on a record to pre-fill a form,
// then commit or cancel.
type EditHandler struct {
	ledgerUC EditSessionService
}

// NewEditHandler creates a new EditHandler.
func NewEditHandler(ledgerUC EditSessionService) *EditHandler {
	return &EditHandler{ledgerUC: ledgerUC}
}

// Begin marks a transaction as being edited and returns it.
func (h *EditHandler) Begin(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	tx, err := h.ledgerUC.BeginEdit(id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to begin edit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EditSessionResponse{Editing: true, Transaction: dto.TransactionFromDomain(tx)})
}

// Pending reports the edit in progress, if any.
func (h *EditHandler) Pending(w http.ResponseWriter, r *http.Request) {
	id, ok := h.ledgerUC.PendingEdit()
	if !ok {
		writeJSON(w, http.StatusOK, dto.EditSessionResponse{})
		return
	}

	tx, err := h.ledgerUC.Get(id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get pending edit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EditSessionResponse{Editing: true, Transaction: dto.TransactionFromDomain(tx)})
}

// Commit applies the request to the transaction being edited.
func (h *EditHandler) Commit(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	tx, err := h.ledgerUC.CommitEdit(r.Context(), req.ToDomainInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to commit edit", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(tx))
}

// Cancel abandons the edit in progress.
func (h *EditHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.ledgerUC.CancelEdit()
	w.WriteHeader(http.StatusNoContent)
}
