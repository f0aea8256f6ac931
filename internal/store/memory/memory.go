package memory

import (
	"context"
	"sort"
	"sync"

	"kantong/internal/core"
)

type row struct {
	expense   core.Expense
	partition core.MonthYear
}

// Store keeps expenses and budgets in process memory. Partitions are indexed
// by key so existence checks do not scan every row.
type Store struct {
	mu      sync.Mutex
	rows    map[string]row
	byMonth map[core.MonthYear]map[string]struct{}
	budgets map[core.MonthYear]core.Money
}

func New() *Store {
	return &Store{
		rows:    make(map[string]row),
		byMonth: make(map[core.MonthYear]map[string]struct{}),
		budgets: make(map[core.MonthYear]core.Money),
	}
}

// CreateExpense implements store.ExpenseWriter.
func (s *Store) CreateExpense(_ context.Context, e core.Expense, p core.MonthYear) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[e.ID]; ok {
		return core.ErrDuplicateID
	}
	s.rows[e.ID] = row{expense: e, partition: p}
	ids, ok := s.byMonth[p]
	if !ok {
		ids = make(map[string]struct{})
		s.byMonth[p] = ids
	}
	ids[e.ID] = struct{}{}
	return nil
}

// UpdateExpense implements store.ExpenseWriter.
func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[e.ID]
	if !ok {
		return core.ErrNotFound
	}
	r.expense = e
	s.rows[e.ID] = r
	return nil
}

// DeleteExpense implements store.ExpenseWriter.
func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(s.rows, id)
	ids := s.byMonth[r.partition]
	delete(ids, id)
	if len(ids) == 0 {
		delete(s.byMonth, r.partition)
	}
	return nil
}

// DeleteMonthYear implements store.ExpenseWriter.
func (s *Store) DeleteMonthYear(_ context.Context, p core.MonthYear) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.byMonth[p]
	for id := range ids {
		delete(s.rows, id)
	}
	delete(s.byMonth, p)
	delete(s.budgets, p)
	if len(ids) == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListExpenses implements store.ExpenseLister.
func (s *Store) ListExpenses(_ context.Context, p core.MonthYear) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.byMonth[p]))
	for id := range s.byMonth[p] {
		out = append(out, s.rows[id].expense)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Timestamp.UnixMilli(), out[j].Timestamp.UnixMilli()
		if ti != tj {
			return ti > tj
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetExpense implements store.ExpenseLister.
func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, core.MonthYear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return core.Expense{}, core.MonthYear{}, core.ErrNotFound
	}
	return r.expense, r.partition, nil
}

// ListMonthYears implements store.MonthLister.
func (s *Store) ListMonthYears(_ context.Context) ([]core.MonthYear, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.MonthYear, 0, len(s.byMonth))
	for p := range s.byMonth {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[j].Before(out[i]) })
	return out, nil
}

// Summarize implements store.SummaryReader.
func (s *Store) Summarize(_ context.Context, p core.MonthYear) (core.ExpenseSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expenses := make([]core.Expense, 0, len(s.byMonth[p]))
	for id := range s.byMonth[p] {
		expenses = append(expenses, s.rows[id].expense)
	}
	return core.Summarize(p, expenses), nil
}

// SetBudget implements store.BudgetStore.
func (s *Store) SetBudget(_ context.Context, p core.MonthYear, amount core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[p] = amount
	return nil
}

// GetBudget implements store.BudgetStore.
func (s *Store) GetBudget(_ context.Context, p core.MonthYear) (core.Money, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	amount, ok := s.budgets[p]
	return amount, ok, nil
}

func (s *Store) Close() error {
	return nil
}
