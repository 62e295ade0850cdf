package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iho/pocketledger/internal/domain"
)

var csvHeader = []string{"id", "date", "description", "category", "kind", "amount"}

// WriteCSV writes one row per record, in ledger order, after a header row.
func WriteCSV(w io.Writer, records []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{r.ID, r.Date, r.Description, r.Category, string(r.Kind), r.Amount.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", r.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
