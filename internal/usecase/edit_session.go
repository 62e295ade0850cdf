package usecase

import (
	"context"

	"github.com/iho/pocketledger/internal/domain"
)

// BeginEdit marks the transaction as the one being edited and returns it so
// the caller can pre-fill a form. Only one edit is in progress at a time;
// beginning another replaces it.
func (uc *LedgerUseCase) BeginEdit(id string) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx, err := uc.indexOf(id)
	if err != nil {
		return nil, err
	}

	uc.editingID = id
	tx := uc.transactions[idx]

	return &tx, nil
}

// PendingEdit returns the ID of the transaction being edited, if any.
func (uc *LedgerUseCase) PendingEdit() (string, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.editingID, uc.editingID != ""
}

// CancelEdit abandons the edit in progress.
func (uc *LedgerUseCase) CancelEdit() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.editingID = ""
}

// CommitEdit applies input to the transaction being edited and ends the session.
func (uc *LedgerUseCase) CommitEdit(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		uc.reject(OpEdit, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.editingID == "" {
		uc.reject(OpEdit, domain.ErrNoPendingEdit)
		return nil, domain.ErrNoPendingEdit
	}

	idx, err := uc.indexOf(uc.editingID)
	if err != nil {
		uc.editingID = ""
		uc.reject(OpEdit, err)
		return nil, err
	}

	return uc.editAt(ctx, idx, input)
}
