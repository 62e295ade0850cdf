package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/iho/pocketledger/internal/adapter/http/dto"
	"github.com/iho/pocketledger/internal/adapter/report"
	"github.com/iho/pocketledger/internal/domain"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	Summary(filter domain.Filter) domain.Summary
}

// SummaryHandler serves aggregated views of the ledger.
type SummaryHandler struct {
	ledgerUC SummaryService
	now      func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(ledgerUC SummaryService) *SummaryHandler {
	return &SummaryHandler{ledgerUC: ledgerUC, now: time.Now}
}

// Summary returns totals and goal progress for the filtered view.
func (h *SummaryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(filter, h.ledgerUC.Summary(filter)))
}

// Export renders the filtered view as a table, markdown, CSV or PNG chart.
func (h *SummaryHandler) Export(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid format", err.Error())
		return
	}

	// Render to a buffer first so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := report.Write(&buf, format, h.ledgerUC.Summary(filter)); err != nil {
		if errors.Is(err, report.ErrNothingToChart) {
			writeError(w, http.StatusUnprocessableEntity, "nothing to export", err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to export", err.Error())
		return
	}

	filename := fmt.Sprintf("pocketledger-%s.%s", h.now().Format("2006-01-02"), format.Extension())
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
