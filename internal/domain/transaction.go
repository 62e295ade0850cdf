package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsCategory is the reserved category for savings movements.
const SavingsCategory = "Savings"

// DefaultCategory is assigned when the input carries no category.
const DefaultCategory = "Other"

// DateLayout formats the display date of a transaction.
const DateLayout = "1/2/2006, 3:04:05 PM"

// EditedMarker is appended to the display date of an edited transaction.
const EditedMarker = " (Edited)"

// Kind classifies a transaction once, when it is created or edited.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindSavings Kind = "savings"
)

// IsValid reports whether k is a known kind.
func (k Kind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindSavings:
		return true
	}
	return false
}

// ClassifyKind decides the kind of a record from its category and amount.
func ClassifyKind(category string, amount decimal.Decimal) Kind {
	if category == SavingsCategory {
		return KindSavings
	}
	if amount.IsPositive() {
		return KindIncome
	}
	return KindExpense
}

// Transaction is a single ledger record.
type Transaction struct {
	CreatedAt   time.Time       `json:"created_at"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Kind        Kind            `json:"kind"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

// UnmarshalJSON accepts records written before kinds were persisted and
// classifies them on the way in.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type plain Transaction
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Transaction(p)
	if !t.Kind.IsValid() {
		t.Kind = ClassifyKind(t.Category, t.Amount)
	}
	return nil
}

// IsEdited reports whether the record has been edited.
func (t Transaction) IsEdited() bool {
	return strings.HasSuffix(t.Date, EditedMarker)
}

// TransactionInput holds the user-supplied fields of a record.
type TransactionInput struct {
	Description string
	Category    string
	Amount      decimal.Decimal
}

// Normalize trims the text fields and fills in the default category.
func (in TransactionInput) Normalize() TransactionInput {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	return in
}

// Validate checks the input before it is turned into a record.
func (in TransactionInput) Validate() error {
	if err := ValidateDescription(in.Description); err != nil {
		return err
	}
	return ValidateAmount(in.Amount)
}

// NewTransaction builds a classified record from validated input.
func NewTransaction(id string, in TransactionInput, now time.Time) Transaction {
	in = in.Normalize()
	return Transaction{
		ID:          id,
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		Kind:        ClassifyKind(in.Category, in.Amount),
		Date:        now.Format(DateLayout),
		CreatedAt:   now.UTC(),
	}
}

// Edited returns the record rebuilt from in. Only the identity and creation
// time survive; the display date becomes the edit time plus the edited marker.
func (t Transaction) Edited(in TransactionInput, now time.Time) Transaction {
	edited := NewTransaction(t.ID, in, now)
	edited.Date += EditedMarker
	edited.CreatedAt = t.CreatedAt
	return edited
}
