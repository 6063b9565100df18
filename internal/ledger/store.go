// Package ledger owns the in-memory expense ledger and the persistence
// discipline around it. The Store is the single owner of the record
// sequence; consumers only ever see copies.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/kv"
	"fintrack/internal/stats"
)

// ChangePublisher receives a notification after every committed
// mutation. Implementations must be best-effort: a publish failure is
// logged by the store and never fails the mutation.
type ChangePublisher interface {
	PublishExpenseChange(ctx context.Context, op string, rec core.ExpenseRecord) error
}

// Mutation operation names passed to the ChangePublisher.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
)

// ExpenseInput is the caller-supplied part of a new record; the store
// assigns the ID.
type ExpenseInput struct {
	Amount      core.Money
	Category    string
	Description string
	Date        core.Date
}

// Snapshot is a read-only copy of the ledger state.
type Snapshot struct {
	Records              []core.ExpenseRecord `json:"records"`
	MonthlyExpenseTarget core.Money           `json:"monthlyExpenseTarget"`
	CurrentSavings       core.Money           `json:"currentSavings"`
	FinancialGoal        core.FinancialGoal   `json:"financialGoal"`
}

// Store holds the ledger and synchronizes it with a kv.Store.
//
// Lifecycle: a Store starts Uninitialized; Initialize loads persisted
// state and moves it to Ready exactly once. Mutations before Ready
// update memory but never write to the medium, otherwise an in-flight
// default could clobber previously persisted data during startup.
type Store struct {
	mu        sync.Mutex
	kv        kv.Store
	publisher ChangePublisher // may be nil
	logger    *slog.Logger

	records []core.ExpenseRecord
	target  core.Money
	savings core.Money
	goal    core.FinancialGoal

	ready   bool
	version uint64
}

// Defaults applied before Initialize and kept for any key that fails
// to load or decode.
var (
	defaultTarget  = core.Money{Cents: 2000000} // 20000.00
	defaultSavings = core.Money{Cents: 8000000} // 80000.00
	defaultGoal    = core.FinancialGoal{Amount: core.Money{Cents: 2000000}}
)

// NewStore creates an uninitialized ledger over the given medium.
// publisher may be nil when change events are not configured.
func NewStore(store kv.Store, publisher ChangePublisher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		kv:        store,
		publisher: publisher,
		logger:    logger.With("component", "ledger"),
		target:    defaultTarget,
		savings:   defaultSavings,
		goal:      defaultGoal,
	}
}

// Initialize loads the four persisted keys, keeping the in-memory
// default for any key that is absent or fails to decode. Its last
// action is always the transition to Ready, the store's single legal
// lifecycle transition, regardless of per-key outcomes.
func (s *Store) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return
	}

	if value, ok := s.load(ctx, KeyExpenses); ok {
		if records, err := decodeRecords(value); err == nil {
			s.records = records
		} else {
			s.logger.Warn("corrupt stored expenses, keeping defaults", "error", err)
		}
	}
	if value, ok := s.load(ctx, KeyMonthlyExpense); ok {
		if m, err := decodeMoney(value); err == nil {
			s.target = m
		} else {
			s.logger.Warn("corrupt stored monthly target, keeping default", "error", err)
		}
	}
	if value, ok := s.load(ctx, KeyCurrentSavings); ok {
		if m, err := decodeMoney(value); err == nil {
			s.savings = m
		} else {
			s.logger.Warn("corrupt stored savings, keeping default", "error", err)
		}
	}
	if value, ok := s.load(ctx, KeyFinancialGoal); ok {
		if goal, err := decodeGoal(value); err == nil {
			s.goal = goal
		} else {
			s.logger.Warn("corrupt stored goal, keeping default", "error", err)
		}
	}

	s.ready = true
	s.logger.Info("ledger initialized", "records", len(s.records))
}

func (s *Store) load(ctx context.Context, key string) (string, bool) {
	value, ok, err := s.kv.Load(ctx, key)
	if err != nil {
		s.logger.Warn("load failed, treating as absent", "key", key, "error", err)
		return "", false
	}
	return value, ok
}

// AddExpense validates the input, assigns a fresh id, appends the
// record and persists the expense list. The created record is returned.
func (s *Store) AddExpense(ctx context.Context, in ExpenseInput) (core.ExpenseRecord, error) {
	rec := core.ExpenseRecord{
		ID:          uuid.NewString(),
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
	}
	if err := rec.Validate(); err != nil {
		return core.ExpenseRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)
	s.version++
	s.persistRecords(ctx)
	s.publish(ctx, OpAdd, rec)

	s.logger.Info("expense added",
		"id", rec.ID,
		"category", rec.Category,
		"amount", rec.Amount.String())
	return rec, nil
}

// DeleteExpense removes the record with the given id. An unknown id is
// a no-op, not an error, so repeated deletes are idempotent.
func (s *Store) DeleteExpense(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.version++
			s.persistRecords(ctx)
			s.publish(ctx, OpDelete, rec)
			s.logger.Info("expense deleted", "id", id)
			return
		}
	}
}

// UpdateExpense shallow-merges the patch into the matching record.
// The second return is false when the id is unknown (a no-op).
func (s *Store) UpdateExpense(ctx context.Context, id string, patch core.ExpensePatch) (core.ExpenseRecord, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID != id {
			continue
		}
		updated := rec.Apply(patch)
		if err := updated.Validate(); err != nil {
			return core.ExpenseRecord{}, true, err
		}
		s.records[i] = updated
		s.version++
		s.persistRecords(ctx)
		s.publish(ctx, OpUpdate, updated)
		s.logger.Info("expense updated", "id", id)
		return updated, true, nil
	}
	return core.ExpenseRecord{}, false, nil
}

// SetMonthlyExpenseTarget replaces the monthly target.
func (s *Store) SetMonthlyExpenseTarget(ctx context.Context, m core.Money) error {
	if m.Cents < 0 {
		return core.ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = m
	s.version++
	s.persist(ctx, KeyMonthlyExpense, encodeMoney(m))
	return nil
}

// SetCurrentSavings replaces the savings balance.
func (s *Store) SetCurrentSavings(ctx context.Context, m core.Money) error {
	if m.Cents < 0 {
		return core.ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savings = m
	s.version++
	s.persist(ctx, KeyCurrentSavings, encodeMoney(m))
	return nil
}

// UpdateFinancialGoal replaces the financial goal.
func (s *Store) UpdateFinancialGoal(ctx context.Context, goal core.FinancialGoal) error {
	if goal.Amount.Cents < 0 {
		return core.ErrNegativeAmount
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = goal
	s.version++
	value, err := encodeGoal(goal)
	if err != nil {
		s.logger.Error("encode goal failed", "error", err)
		return nil
	}
	s.persist(ctx, KeyFinancialGoal, value)
	return nil
}

// Snapshot returns a copy of the ledger. Mutating the returned slice
// does not affect the store.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Records:              append([]core.ExpenseRecord(nil), s.records...),
		MonthlyExpenseTarget: s.target,
		CurrentSavings:       s.savings,
		FinancialGoal:        s.goal,
	}
}

// Stats recomputes the derived statistics over the current records.
// Nothing is cached here; see httpapi for version-keyed memoization.
func (s *Store) Stats(now time.Time) stats.Snapshot {
	s.mu.Lock()
	records := append([]core.ExpenseRecord(nil), s.records...)
	s.mu.Unlock()
	return stats.Compute(records, now)
}

// Version is incremented by every committed mutation. Consumers use it
// as a memoization key: equal versions imply identical record sets.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// persistRecords writes the full expense list. Callers hold s.mu.
func (s *Store) persistRecords(ctx context.Context) {
	value, err := encodeRecords(s.records)
	if err != nil {
		s.logger.Error("encode records failed", "error", err)
		return
	}
	s.persist(ctx, KeyExpenses, value)
}

// persist is the single write entry point. It is gated on the Ready
// state: before Initialize completes no mutation may reach the medium.
// Write failures are logged and swallowed; the in-memory ledger is
// the source of truth for the running session.
func (s *Store) persist(ctx context.Context, key, value string) {
	if !s.ready {
		return
	}
	if err := s.kv.Save(ctx, key, value); err != nil {
		s.logger.Error("persist failed, continuing in-memory",
			"key", key, "error", err)
	}
}

func (s *Store) publish(ctx context.Context, op string, rec core.ExpenseRecord) {
	if s.publisher == nil || !s.ready {
		return
	}
	if err := s.publisher.PublishExpenseChange(ctx, op, rec); err != nil {
		s.logger.Warn("publish change event failed",
			"op", op, "id", rec.ID, "error", err)
	}
}
