package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/transactions?view=Expense&search=rent", nil)
	f, err := parseFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.View != domain.ViewExpense || f.Search != "rent" {
		t.Fatalf("unexpected filter: %+v", f)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions", nil)
	if f, _ := parseFilter(req); f.View != domain.ViewAll {
		t.Fatalf("expected default view all, got %q", f.View)
	}

	req = httptest.NewRequest(http.MethodGet, "/transactions?view=bogus", nil)
	if _, err := parseFilter(req); !errors.Is(err, domain.ErrInvalidView) {
		t.Fatalf("expected ErrInvalidView, got %v", err)
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"invalid description", domain.ErrInvalidDescription, http.StatusBadRequest},
		{"invalid amount", fmt.Errorf("%w: zero", domain.ErrInvalidAmount), http.StatusBadRequest},
		{"invalid goal", domain.ErrInvalidGoal, http.StatusBadRequest},
		{"not found", domain.ErrTransactionNotFound, http.StatusNotFound},
		{"index out of range", domain.ErrIndexOutOfRange, http.StatusNotFound},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusConflict},
		{"persistence", fmt.Errorf("%w: disk", domain.ErrPersistence), http.StatusInternalServerError},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" || resp.Message != "detail" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
