package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/domain"
)

type summaryServiceStub struct {
	summaryFn func(filter domain.Filter) domain.Summary
}

func (s *summaryServiceStub) Summary(filter domain.Filter) domain.Summary {
	return s.summaryFn(filter)
}

func sampleSummary(filter domain.Filter) domain.Summary {
	records := []domain.Transaction{
		{ID: "tx-1", Description: "Salary", Category: "Work", Kind: domain.KindIncome, Amount: decimal.NewFromInt(5000)},
		{ID: "tx-2", Description: "Rent", Category: "Housing", Kind: domain.KindExpense, Amount: decimal.NewFromInt(-1500)},
	}
	return domain.Summarize(filter.Apply(records), domain.DefaultGoals())
}

func newSummaryHandler() *SummaryHandler {
	h := NewSummaryHandler(&summaryServiceStub{summaryFn: sampleSummary})
	h.now = func() time.Time { return time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC) }
	return h
}

func TestSummaryHandler_Summary(t *testing.T) {
	handler := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/summary?view=expense", nil)
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.SummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.View != domain.ViewExpense || resp.Count != 1 {
		t.Fatalf("unexpected summary: %+v", resp)
	}
	if !resp.Totals.Expense.Equal(decimal.NewFromInt(1500)) {
		t.Fatalf("expected expense 1500, got %s", resp.Totals.Expense)
	}
}

func TestSummaryHandler_Export(t *testing.T) {
	handler := newSummaryHandler()

	tests := []struct {
		format      string
		contentType string
		filename    string
		contains    string
	}{
		{"", "text/plain; charset=utf-8", "pocketledger-2024-03-09.txt", "Salary"},
		{"md", "text/markdown; charset=utf-8", "pocketledger-2024-03-09.md", "|"},
		{"csv", "text/csv; charset=utf-8", "pocketledger-2024-03-09.csv", "id,date,description,category,kind,amount"},
		{"png", "image/png", "pocketledger-2024-03-09.png", "\x89PNG"},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/export?format="+tt.format, nil)
			rec := httptest.NewRecorder()

			handler.Export(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Fatalf("expected content type %q, got %q", tt.contentType, got)
			}
			if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, tt.filename) {
				t.Fatalf("expected filename %q in %q", tt.filename, got)
			}
			if !bytes.Contains(rec.Body.Bytes(), []byte(tt.contains)) {
				t.Fatalf("expected body to contain %q", tt.contains)
			}
		})
	}
}

func TestSummaryHandler_Export_UnknownFormat(t *testing.T) {
	handler := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/export?format=pdf", nil)
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSummaryHandler_Export_NothingToChart(t *testing.T) {
	handler := newSummaryHandler()

	req := httptest.NewRequest(http.MethodGet, "/export?format=png&view=income", nil)
	rec := httptest.NewRecorder()

	handler.Export(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error, got %q", ct)
	}
}
