package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/pocketledger/internal/domain"
)

func encodeTransactions(records []domain.Transaction) (string, error) {
	if records == nil {
		records = []domain.Transaction{}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode transactions: %w", err)
	}

	return string(data), nil
}

func decodeTransactions(raw string) ([]domain.Transaction, error) {
	var records []domain.Transaction
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	return records, nil
}

func decodeGoalValue(raw string) (decimal.Decimal, error) {
	d, err := domain.ParseGoalValue(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	return d, nil
}

func decodeTheme(raw string) (domain.Theme, error) {
	th, err := domain.ParseTheme(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStorageCorrupt, err)
	}

	return th, nil
}
