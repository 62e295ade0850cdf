package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

type editServiceStub struct {
	pendingID string
	beginFn   func(id string) (*domain.Transaction, error)
	getFn     func(id string) (*domain.Transaction, error)
	commitFn  func(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error)
	cancelled bool
}

func (s *editServiceStub) BeginEdit(id string) (*domain.Transaction, error) {
	return s.beginFn(id)
}

func (s *editServiceStub) PendingEdit() (string, bool) {
	return s.pendingID, s.pendingID != ""
}

func (s *editServiceStub) Get(id string) (*domain.Transaction, error) {
	return s.getFn(id)
}

func (s *editServiceStub) CommitEdit(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
	return s.commitFn(ctx, input)
}

func (s *editServiceStub) CancelEdit() {
	s.cancelled = true
	s.pendingID = ""
}

func TestEditHandler_Begin(t *testing.T) {
	handler := NewEditHandler(&editServiceStub{
		beginFn: func(id string) (*domain.Transaction, error) {
			if id != "tx-1" {
				t.Fatalf("unexpected id %q", id)
			}
			return sampleTransaction(), nil
		},
	})

	req := withChiParam(httptest.NewRequest(http.MethodPost, "/edit/tx-1", nil), "id", "tx-1")
	rec := httptest.NewRecorder()
	handler.Begin(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.EditSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Editing || resp.Transaction == nil || resp.Transaction.Description != "Groceries" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestEditHandler_Begin_NotFound(t *testing.T) {
	handler := NewEditHandler(&editServiceStub{
		beginFn: func(id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
	})

	req := withChiParam(httptest.NewRequest(http.MethodPost, "/edit/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()
	handler.Begin(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEditHandler_Pending(t *testing.T) {
	stub := &editServiceStub{
		getFn: func(id string) (*domain.Transaction, error) { return sampleTransaction(), nil },
	}
	handler := NewEditHandler(stub)

	rec := httptest.NewRecorder()
	handler.Pending(rec, httptest.NewRequest(http.MethodGet, "/edit", nil))

	var idle dto.EditSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &idle); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if idle.Editing || idle.Transaction != nil {
		t.Fatalf("expected no pending edit, got %+v", idle)
	}

	stub.pendingID = "tx-1"
	rec = httptest.NewRecorder()
	handler.Pending(rec, httptest.NewRequest(http.MethodGet, "/edit", nil))

	var busy dto.EditSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &busy); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !busy.Editing || busy.Transaction.ID != "tx-1" {
		t.Fatalf("expected pending edit of tx-1, got %+v", busy)
	}
}

func TestEditHandler_Commit(t *testing.T) {
	var captured domain.TransactionInput
	handler := NewEditHandler(&editServiceStub{
		commitFn: func(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
			captured = input
			return sampleTransaction(), nil
		},
	})

	body := `{"description":"Groceries","category":"Food","amount":"-120"}`
	rec := httptest.NewRecorder()
	handler.Commit(rec, httptest.NewRequest(http.MethodPut, "/edit", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Description != "Groceries" {
		t.Fatalf("unexpected input: %+v", captured)
	}
}

func TestEditHandler_Commit_NoPendingEdit(t *testing.T) {
	handler := NewEditHandler(&editServiceStub{
		commitFn: func(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrNoPendingEdit
		},
	})

	body := `{"description":"Groceries","category":"Food","amount":"-120"}`
	rec := httptest.NewRecorder()
	handler.Commit(rec, httptest.NewRequest(http.MethodPut, "/edit", strings.NewReader(body)))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestEditHandler_Cancel(t *testing.T) {
	stub := &editServiceStub{pendingID: "tx-1"}
	handler := NewEditHandler(stub)

	rec := httptest.NewRecorder()
	handler.Cancel(rec, httptest.NewRequest(http.MethodDelete, "/edit", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !stub.cancelled {
		t.Fatalf("expected the edit to be cancelled")
	}
}
