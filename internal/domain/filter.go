package domain

import (
	"fmt"
	"strings"
)

// View selects which kinds of records a filter keeps.
type View string

const (
	ViewAll     View = "all"
	ViewIncome  View = "income"
	ViewExpense View = "expense"
	ViewSavings View = "savings"
)

// ParseView parses a view name. Empty means all.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewIncome, ViewExpense, ViewSavings:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidView, s)
	}
}

// Filter produces a read-only view of the ledger.
type Filter struct {
	View   View
	Search string
}

// Apply returns the records matching f in their original order. The input
// slice is never modified.
func (f Filter) Apply(records []Transaction) []Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]Transaction, 0, len(records))
	for _, r := range records {
		if !f.matchesView(r) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(r.Description), search) {
			continue
		}
		result = append(result, r)
	}

	return result
}

func (f Filter) matchesView(r Transaction) bool {
	switch f.View {
	case ViewIncome:
		return r.Kind == KindIncome
	case ViewExpense:
		return r.Kind == KindExpense
	case ViewSavings:
		return r.Kind == KindSavings
	default:
		return true
	}
}
