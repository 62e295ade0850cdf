// Package report renders a ledger summary for export.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/iho/pocketledger/internal/domain"
)

// Format is an export format.
type Format string

const (
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatPNG      Format = "png"
)

var (
	ErrUnknownFormat  = fmt.Errorf("%w: unknown export format", domain.ErrValidation)
	ErrNothingToChart = errors.New("no expenses to chart")
)

// ParseFormat parses a format name. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatMarkdown, FormatCSV, FormatPNG:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatTable:
		return "txt"
	default:
		return string(f)
	}
}

// Write renders summary to w in format f.
func Write(w io.Writer, f Format, summary domain.Summary) error {
	switch f {
	case FormatTable:
		return WriteTable(w, summary)
	case FormatMarkdown:
		return WriteMarkdown(w, summary)
	case FormatCSV:
		return WriteCSV(w, summary.Transactions)
	case FormatPNG:
		return WriteChart(w, summary.Totals)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}
