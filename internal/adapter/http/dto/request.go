package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

// TransactionRequest is the body of an add or edit request. Amount accepts a
// JSON number or a decimal string; the sign decides income or expense.
type TransactionRequest struct {
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
}

// ToDomainInput converts to domain input.
func (r *TransactionRequest) ToDomainInput() domain.TransactionInput {
	return domain.TransactionInput{
		Description: r.Description,
		Category:    r.Category,
		Amount:      r.Amount,
	}
}

// AmountRequest is the body of a savings deposit or withdrawal.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalRequest is the body of a goal update.
type GoalRequest struct {
	Value *decimal.Decimal `json:"value"`
}

// GoalValue returns the requested value, failing when it is absent.
func (r *GoalRequest) GoalValue() (decimal.Decimal, error) {
	if r.Value == nil {
		return decimal.Zero, fmt.Errorf("%w: value is required", domain.ErrInvalidGoal)
	}
	return *r.Value, nil
}

// ThemeRequest is the body of a theme update.
type ThemeRequest struct {
	Theme string `json:"theme"`
}
