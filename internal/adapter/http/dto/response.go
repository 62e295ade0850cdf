package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Kind        domain.Kind     `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Edited      bool            `json:"edited"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Category:    t.Category,
		Kind:        t.Kind,
		Amount:      t.Amount,
		Date:        t.Date,
		Edited:      t.IsEdited(),
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(records []domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(records))
	for i := range records {
		result[i] = TransactionFromDomain(&records[i])
	}
	return result
}

// ListTransactionsResponse represents a filtered view of the ledger.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int                    `json:"total"`
}

// CategoryResponse is one row of the expense breakdown.
type CategoryResponse struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// TotalsResponse represents aggregated totals.
type TotalsResponse struct {
	Income     decimal.Decimal    `json:"income"`
	Expense    decimal.Decimal    `json:"expense"`
	Savings    decimal.Decimal    `json:"savings"`
	Balance    decimal.Decimal    `json:"balance"`
	Categories []CategoryResponse `json:"categories"`
}

// TotalsFromDomain converts domain totals to a response.
func TotalsFromDomain(t domain.Totals) TotalsResponse {
	breakdown := t.CategoryBreakdown()
	categories := make([]CategoryResponse, len(breakdown))
	for i, c := range breakdown {
		categories[i] = CategoryResponse{Category: c.Category, Amount: c.Amount}
	}

	return TotalsResponse{
		Income:     t.Income,
		Expense:    t.Expense,
		Savings:    t.Savings,
		Balance:    t.Balance,
		Categories: categories,
	}
}

// SpendingProgressResponse represents the spending-limit indicator.
type SpendingProgressResponse struct {
	Limit     decimal.Decimal `json:"limit"`
	Percent   decimal.Decimal `json:"percent"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
}

// SavingsProgressResponse represents the savings-goal indicator.
type SavingsProgressResponse struct {
	Target    decimal.Decimal `json:"target"`
	Percent   decimal.Decimal `json:"percent"`
	Remaining decimal.Decimal `json:"remaining"`
	Reached   bool            `json:"reached"`
}

// SummaryResponse represents totals and progress for a view.
type SummaryResponse struct {
	View     domain.View              `json:"view"`
	Search   string                   `json:"search,omitempty"`
	Count    int                      `json:"count"`
	Totals   TotalsResponse           `json:"totals"`
	Spending SpendingProgressResponse `json:"spending"`
	Savings  SavingsProgressResponse  `json:"savings"`
}

// SummaryFromDomain converts a domain summary to a response.
func SummaryFromDomain(filter domain.Filter, s domain.Summary) *SummaryResponse {
	return &SummaryResponse{
		View:   filter.View,
		Search: filter.Search,
		Count:  len(s.Transactions),
		Totals: TotalsFromDomain(s.Totals),
		Spending: SpendingProgressResponse{
			Limit:     s.Spending.Limit,
			Percent:   s.Spending.Percent,
			Remaining: s.Spending.Remaining,
			Status:    string(s.Spending.Status),
		},
		Savings: SavingsProgressResponse{
			Target:    s.Savings.Target,
			Percent:   s.Savings.Percent,
			Remaining: s.Savings.Remaining,
			Reached:   s.Savings.Reached,
		},
	}
}

// GoalsResponse represents the goal configuration.
type GoalsResponse struct {
	SpendingLimit decimal.Decimal `json:"spending_limit"`
	SavingsTarget decimal.Decimal `json:"savings_target"`
}

// GoalsFromDomain converts domain goals to a response.
func GoalsFromDomain(g domain.Goals) *GoalsResponse {
	return &GoalsResponse{
		SpendingLimit: g.SpendingLimit,
		SavingsTarget: g.SavingsTarget,
	}
}

// ThemeResponse represents the theme preference.
type ThemeResponse struct {
	Theme domain.Theme `json:"theme"`
}

// EditSessionResponse reports the edit in progress. Transaction is nil when
// no edit is pending.
type EditSessionResponse struct {
	Editing     bool                 `json:"editing"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
