package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/pocketledger/internal/domain"
)

// LedgerUseCase owns the transaction sequence, the goals and the theme
// preference. Every mutation validates first, then writes the complete
// sequence to the store, and only then replaces the in-memory state.
type LedgerUseCase struct {
	mu       sync.Mutex
	store    KVStore
	idGen    IDGenerator
	now      func() time.Time
	logger   zerolog.Logger
	recorder Recorder

	transactions []domain.Transaction
	goals        domain.Goals
	theme        domain.Theme
	editingID    string
}

// Option configures a LedgerUseCase.
type Option func(*LedgerUseCase)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(uc *LedgerUseCase) { uc.now = now }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(uc *LedgerUseCase) { uc.logger = logger }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(uc *LedgerUseCase) {
		if r != nil {
			uc.recorder = r
		}
	}
}

// NewLedgerUseCase creates a new LedgerUseCase with an empty ledger and
// default goals. Call Load to read persisted state.
func NewLedgerUseCase(store KVStore, idGen IDGenerator, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		store:        store,
		idGen:        idGen,
		now:          time.Now,
		logger:       zerolog.Nop(),
		recorder:     nopRecorder{},
		transactions: []domain.Transaction{},
		goals:        domain.DefaultGoals(),
		theme:        domain.DefaultTheme,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Load reads the ledger, goals and theme from the store. Absent or corrupt
// values fall back to their defaults; only a failing store is an error.
func (uc *LedgerUseCase) Load(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	records, assigned, err := uc.loadTransactions(ctx)
	if err != nil {
		return err
	}

	// Assigned IDs must survive the next load, so write them back now.
	if assigned {
		raw, err := encodeTransactions(records)
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
		}
		if err := uc.persist(ctx, KeyTransactions, raw); err != nil {
			return err
		}
	}

	limit, err := uc.loadGoal(ctx, KeySpendingLimit, domain.DefaultSpendingLimit)
	if err != nil {
		return err
	}

	target, err := uc.loadGoal(ctx, KeySavingsTarget, domain.DefaultSavingsTarget)
	if err != nil {
		return err
	}

	theme, err := uc.loadTheme(ctx)
	if err != nil {
		return err
	}

	uc.transactions = records
	uc.goals = domain.Goals{SpendingLimit: limit, SavingsTarget: target}
	uc.theme = theme
	uc.editingID = ""
	uc.recorder.ObserveTotals(domain.ComputeTotals(records))

	uc.logger.Debug().
		Int("transactions", len(records)).
		Str("spending_limit", limit.String()).
		Str("savings_target", target.String()).
		Msg("ledger loaded")

	return nil
}

// Transactions returns a copy of the full, unfiltered ledger.
func (uc *LedgerUseCase) Transactions() []domain.Transaction {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.snapshot()
}

// List returns the records matching filter in ledger order.
func (uc *LedgerUseCase) List(filter domain.Filter) []domain.Transaction {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return filter.Apply(uc.transactions)
}

// Get retrieves a transaction by ID.
func (uc *LedgerUseCase) Get(id string) (*domain.Transaction, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx, err := uc.indexOf(id)
	if err != nil {
		return nil, err
	}

	tx := uc.transactions[idx]
	return &tx, nil
}

// Summary aggregates the filtered view against the current goals.
func (uc *LedgerUseCase) Summary(filter domain.Filter) domain.Summary {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	return domain.Summarize(filter.Apply(uc.transactions), uc.goals)
}

// Add appends a new transaction.
func (uc *LedgerUseCase) Add(ctx context.Context, input domain.TransactionInput) (*domain.Transaction, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		uc.reject(OpAdd, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	return uc.add(ctx, OpAdd, input)
}

func (uc *LedgerUseCase) add(ctx context.Context, op string, input domain.TransactionInput) (*domain.Transaction, error) {
	tx := domain.NewTransaction(uc.idGen.Generate(), input, uc.now())
	next := append(uc.snapshot(), tx)

	if tx.Kind == domain.KindSavings && tx.Amount.IsNegative() {
		if err := checkSavingsCover(next); err != nil {
			uc.reject(op, err)
			return nil, err
		}
	}

	if err := uc.commit(ctx, op, next); err != nil {
		return nil, err
	}

	uc.logger.Debug().
		Str("op", op).
		Str("id", tx.ID).
		Str("kind", string(tx.Kind)).
		Str("amount", tx.Amount.String()).
		Msg("transaction added")

	return &tx, nil
}

// Edit replaces the transaction with the given ID, keeping its identity and
// position in the ledger.
func (uc *LedgerUseCase) Edit(ctx context.Context, id string, input domain.TransactionInput) (*domain.Transaction, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		uc.reject(OpEdit, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx, err := uc.indexOf(id)
	if err != nil {
		uc.reject(OpEdit, err)
		return nil, err
	}

	return uc.editAt(ctx, idx, input)
}

// EditAt replaces the transaction at index in the unfiltered ledger.
func (uc *LedgerUseCase) EditAt(ctx context.Context, index int, input domain.TransactionInput) (*domain.Transaction, error) {
	input = input.Normalize()
	if err := input.Validate(); err != nil {
		uc.reject(OpEdit, err)
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.checkIndex(index); err != nil {
		uc.reject(OpEdit, err)
		return nil, err
	}

	return uc.editAt(ctx, index, input)
}

func (uc *LedgerUseCase) editAt(ctx context.Context, idx int, input domain.TransactionInput) (*domain.Transaction, error) {
	original := uc.transactions[idx]
	edited := original.Edited(input, uc.now())

	next := uc.snapshot()
	next[idx] = edited

	if original.Kind == domain.KindSavings || edited.Kind == domain.KindSavings {
		if err := checkSavingsCover(next); err != nil {
			uc.reject(OpEdit, err)
			return nil, err
		}
	}

	if err := uc.commit(ctx, OpEdit, next); err != nil {
		return nil, err
	}

	if uc.editingID == edited.ID {
		uc.editingID = ""
	}

	uc.logger.Debug().Str("id", edited.ID).Int("index", idx).Msg("transaction edited")

	return &edited, nil
}

// Delete removes the transaction with the given ID.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx, err := uc.indexOf(id)
	if err != nil {
		uc.reject(OpDelete, err)
		return err
	}

	return uc.deleteAt(ctx, idx)
}

// DeleteAt removes the transaction at index in the unfiltered ledger.
func (uc *LedgerUseCase) DeleteAt(ctx context.Context, index int) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.checkIndex(index); err != nil {
		uc.reject(OpDelete, err)
		return err
	}

	return uc.deleteAt(ctx, index)
}

func (uc *LedgerUseCase) deleteAt(ctx context.Context, idx int) error {
	removed := uc.transactions[idx]

	next := make([]domain.Transaction, 0, len(uc.transactions)-1)
	next = append(next, uc.transactions[:idx]...)
	next = append(next, uc.transactions[idx+1:]...)

	if err := uc.commit(ctx, OpDelete, next); err != nil {
		return err
	}

	if uc.editingID == removed.ID {
		uc.editingID = ""
	}

	uc.logger.Debug().Str("id", removed.ID).Int("index", idx).Msg("transaction deleted")

	return nil
}

// ResetMonth discards every record except savings movements.
func (uc *LedgerUseCase) ResetMonth(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := domain.Filter{View: domain.ViewSavings}.Apply(uc.transactions)
	removed := len(uc.transactions) - len(next)

	if err := uc.commit(ctx, OpResetMonth, next); err != nil {
		return err
	}

	if uc.editingID != "" {
		if _, err := uc.indexOf(uc.editingID); err != nil {
			uc.editingID = ""
		}
	}

	uc.logger.Info().Int("removed", removed).Int("kept", len(next)).Msg("month reset")

	return nil
}

// commit persists next as the ledger and installs it on success. On failure
// the previous ledger stays in place.
func (uc *LedgerUseCase) commit(ctx context.Context, op string, next []domain.Transaction) error {
	raw, err := encodeTransactions(next)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	if err := uc.persist(ctx, KeyTransactions, raw); err != nil {
		uc.logger.Error().Err(err).Str("op", op).Msg("ledger write failed, keeping previous state")
		return err
	}

	uc.transactions = next
	uc.recorder.ObserveMutation(op)
	uc.recorder.ObserveTotals(domain.ComputeTotals(next))

	return nil
}

func (uc *LedgerUseCase) persist(ctx context.Context, key, value string) error {
	start := time.Now()
	err := uc.store.Set(ctx, key, value)
	uc.recorder.ObservePersist(key, time.Since(start), err)

	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, key, err)
	}

	return nil
}

func (uc *LedgerUseCase) loadTransactions(ctx context.Context) ([]domain.Transaction, bool, error) {
	raw, found, err := uc.store.Get(ctx, KeyTransactions)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", KeyTransactions, err)
	}

	if !found {
		return []domain.Transaction{}, false, nil
	}

	records, err := decodeTransactions(raw)
	if err != nil {
		uc.corrupt(KeyTransactions, err)
		return []domain.Transaction{}, false, nil
	}

	// Records from older data carry no identity; give them one.
	assigned := false
	seen := make(map[string]bool, len(records))
	for i := range records {
		if records[i].ID == "" || seen[records[i].ID] {
			records[i].ID = uc.idGen.Generate()
			assigned = true
		}
		seen[records[i].ID] = true
	}

	return records, assigned, nil
}

func (uc *LedgerUseCase) corrupt(key string, err error) {
	uc.recorder.ObserveCorruption(key)
	uc.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt persisted value")
}

func (uc *LedgerUseCase) reject(op string, err error) {
	uc.recorder.ObserveRejection(op, err)
	uc.logger.Debug().Err(err).Str("op", op).Msg("operation rejected")
}

func (uc *LedgerUseCase) snapshot() []domain.Transaction {
	out := make([]domain.Transaction, len(uc.transactions))
	copy(out, uc.transactions)
	return out
}

func (uc *LedgerUseCase) indexOf(id string) (int, error) {
	for i, tx := range uc.transactions {
		if tx.ID == id {
			return i, nil
		}
	}

	return -1, fmt.Errorf("%w: %s", domain.ErrTransactionNotFound, id)
}

func (uc *LedgerUseCase) checkIndex(index int) error {
	if index < 0 || index >= len(uc.transactions) {
		return fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, len(uc.transactions))
	}

	return nil
}

// checkSavingsCover rejects a ledger whose savings total would go negative.
func checkSavingsCover(records []domain.Transaction) error {
	savings := domain.ComputeTotals(records).Savings
	if savings.IsNegative() {
		return fmt.Errorf("%w: short by %s", domain.ErrInsufficientFunds, savings.Neg())
	}

	return nil
}

// IsClientError reports whether err is caused by the caller's input rather
// than by the store.
func IsClientError(err error) bool {
	return errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrInsufficientFunds) ||
		errors.Is(err, domain.ErrOutOfBounds) ||
		errors.Is(err, domain.ErrNoPendingEdit)
}

type nopRecorder struct{}

func (nopRecorder) ObserveMutation(string)                      {}
func (nopRecorder) ObserveRejection(string, error)              {}
func (nopRecorder) ObservePersist(string, time.Duration, error) {}
func (nopRecorder) ObserveCorruption(string)                    {}
func (nopRecorder) ObserveTotals(domain.Totals)                 {}
