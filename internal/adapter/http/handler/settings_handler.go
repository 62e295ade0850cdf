package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

// SettingsService defines the behavior needed by SettingsHandler.
type SettingsService interface {
	Goals() domain.Goals
	SetSpendingLimit(ctx context.Context, value decimal.Decimal) error
	SetSavingsTarget(ctx context.Context, value decimal.Decimal) error
	Theme() domain.Theme
	SetTheme(ctx context.Context, theme domain.Theme) error
}

// SettingsHandler handles goals and preferences.
type SettingsHandler struct {
	ledgerUC SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(ledgerUC SettingsService) *SettingsHandler {
	return &SettingsHandler{ledgerUC: ledgerUC}
}

// GetGoals returns the spending limit and savings target.
func (h *SettingsHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(h.ledgerUC.Goals()))
}

// SetSpendingLimit updates the spending limit.
func (h *SettingsHandler) SetSpendingLimit(w http.ResponseWriter, r *http.Request) {
	h.setGoal(w, r, h.ledgerUC.SetSpendingLimit, "failed to set spending limit")
}

// SetSavingsTarget updates the savings target.
func (h *SettingsHandler) SetSavingsTarget(w http.ResponseWriter, r *http.Request) {
	h.setGoal(w, r, h.ledgerUC.SetSavingsTarget, "failed to set savings target")
}

func (h *SettingsHandler) setGoal(
	w http.ResponseWriter,
	r *http.Request,
	set func(context.Context, decimal.Decimal) error,
	failure string,
) {
	var req dto.GoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	value, err := req.GoalValue()
	if err != nil {
		writeError(w, http.StatusBadRequest, failure, err.Error())
		return
	}

	if err := set(r.Context(), value); err != nil {
		writeError(w, mapDomainError(err), failure, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(h.ledgerUC.Goals()))
}

// GetTheme returns the theme preference.
func (h *SettingsHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.ThemeResponse{Theme: h.ledgerUC.Theme()})
}

// SetTheme updates the theme preference.
func (h *SettingsHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req dto.ThemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.ledgerUC.SetTheme(r.Context(), domain.Theme(req.Theme)); err != nil {
		writeError(w, mapDomainError(err), "failed to set theme", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ThemeResponse{Theme: h.ledgerUC.Theme()})
}
