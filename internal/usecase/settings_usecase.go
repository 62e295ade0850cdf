package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

// Goals returns the current spending limit and savings target.
func (uc *LedgerUseCase) Goals() domain.Goals {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.goals
}

// SetSpendingLimit overwrites the spending limit. Existing records are untouched.
func (uc *LedgerUseCase) SetSpendingLimit(ctx context.Context, value decimal.Decimal) error {
	if err := domain.ValidateGoalValue(value); err != nil {
		uc.reject(OpSetLimit, err)
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.persist(ctx, KeySpendingLimit, value.String()); err != nil {
		return err
	}

	uc.goals.SpendingLimit = value
	uc.recorder.ObserveMutation(OpSetLimit)
	uc.logger.Debug().Str("value", value.String()).Msg("spending limit set")

	return nil
}

// SetSavingsTarget overwrites the savings target.
func (uc *LedgerUseCase) SetSavingsTarget(ctx context.Context, value decimal.Decimal) error {
	if err := domain.ValidateGoalValue(value); err != nil {
		uc.reject(OpSetTarget, err)
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.persist(ctx, KeySavingsTarget, value.String()); err != nil {
		return err
	}

	uc.goals.SavingsTarget = value
	uc.recorder.ObserveMutation(OpSetTarget)
	uc.logger.Debug().Str("value", value.String()).Msg("savings target set")

	return nil
}

// Theme returns the display theme preference.
func (uc *LedgerUseCase) Theme() domain.Theme {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.theme
}

// SetTheme stores the display theme preference.
func (uc *LedgerUseCase) SetTheme(ctx context.Context, theme domain.Theme) error {
	theme, err := domain.ParseTheme(string(theme))
	if err != nil {
		uc.reject(OpSetTheme, err)
		return err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.persist(ctx, KeyTheme, string(theme)); err != nil {
		return err
	}

	uc.theme = theme
	uc.recorder.ObserveMutation(OpSetTheme)

	return nil
}

func (uc *LedgerUseCase) loadGoal(ctx context.Context, key string, def decimal.Decimal) (decimal.Decimal, error) {
	raw, found, err := uc.store.Get(ctx, key)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load %s: %w", key, err)
	}

	if !found {
		return def, nil
	}

	value, err := decodeGoalValue(raw)
	if err != nil {
		uc.corrupt(key, err)
		return def, nil
	}

	return value, nil
}

func (uc *LedgerUseCase) loadTheme(ctx context.Context) (domain.Theme, error) {
	raw, found, err := uc.store.Get(ctx, KeyTheme)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", KeyTheme, err)
	}

	if !found {
		return domain.DefaultTheme, nil
	}

	theme, err := decodeTheme(raw)
	if err != nil {
		uc.corrupt(KeyTheme, err)
		return domain.DefaultTheme, nil
	}

	return theme, nil
}
