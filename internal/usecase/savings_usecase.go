package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

// Deposit moves amount from the free balance into savings.
func (uc *LedgerUseCase) Deposit(ctx context.Context, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		uc.reject(OpDeposit, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.add(ctx, OpDeposit, domain.TransactionInput{
		Description: DepositDescription,
		Category:    domain.SavingsCategory,
		Amount:      amount,
	})
}

// Withdraw moves amount out of savings. It fails with ErrInsufficientFunds
// when amount exceeds the current savings total.
func (uc *LedgerUseCase) Withdraw(ctx context.Context, amount decimal.Decimal) (*domain.Transaction, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		uc.reject(OpWithdraw, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.add(ctx, OpWithdraw, domain.TransactionInput{
		Description: WithdrawalDescription,
		Category:    domain.SavingsCategory,
		Amount:      amount.Neg(),
	})
}

// SavingsAction dispatches a named savings movement.
func (uc *LedgerUseCase) SavingsAction(ctx context.Context, action domain.SavingsAction, amount decimal.Decimal) (*domain.Transaction, error) {
	action, err := domain.ParseSavingsAction(string(action))
	if err != nil {
		return nil, err
	}

	if action == domain.ActionWithdrawal {
		return uc.Withdraw(ctx, amount)
	}

	return uc.Deposit(ctx, amount)
}
