package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"kantong/internal/amqp"
	"kantong/internal/core"
	applog "kantong/internal/log"
	"kantong/internal/store"
)

// EventPublisher sends change notifications. *amqp.Client satisfies it.
type EventPublisher interface {
	PublishExpenseEvent(ctx context.Context, ev *amqp.ExpenseEvent) error
	Close() error
}

// ExpenseService orchestrates expense operations across a store and an
// optional event publisher.
type ExpenseService struct {
	store     store.Store
	publisher EventPublisher

	now   func() time.Time
	newID func() string
}

// NewExpense is what a user enters when recording an expense.
type NewExpense struct {
	Amount        core.Money
	PaymentMethod string
	Category      string
	Description   string
}

// ExpenseChanges lists the fields to overwrite; nil fields keep their value.
type ExpenseChanges struct {
	Amount        *core.Money
	PaymentMethod *string
	Category      *string
	Description   *string
}

// NewExpenseService wraps st. publisher may be nil, in which case no events
// are sent.
func NewExpenseService(st store.Store, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		store:     st,
		publisher: publisher,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// AddExpense records a new expense in partition p, stamped with the current time.
func (s *ExpenseService) AddExpense(ctx context.Context, p core.MonthYear, in NewExpense) (core.Expense, error) {
	if err := p.Validate(); err != nil {
		return core.Expense{}, err
	}

	e := core.Expense{
		ID:            s.newID(),
		Amount:        in.Amount,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Category:      strings.TrimSpace(in.Category),
		Description:   strings.TrimSpace(in.Description),
		Timestamp:     s.timestamp(),
	}.WithDefaults()
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.CreateExpense(ctx, e, p); err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseCreated, e.ID, p.Month, p.Year, e.Amount.Cents))
	return e, nil
}

// EditExpense applies changes to the expense with the given id. The
// timestamp is reset to now; the partition never changes.
func (s *ExpenseService) EditExpense(ctx context.Context, id string, changes ExpenseChanges) (core.Expense, error) {
	e, p, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense: %w", err)
	}

	if changes.Amount != nil {
		e.Amount = *changes.Amount
	}
	if changes.PaymentMethod != nil {
		e.PaymentMethod = strings.TrimSpace(*changes.PaymentMethod)
	}
	if changes.Category != nil {
		e.Category = strings.TrimSpace(*changes.Category)
	}
	if changes.Description != nil {
		e.Description = strings.TrimSpace(*changes.Description)
	}
	e = e.WithDefaults()
	e.Timestamp = s.timestamp()

	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("update expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseUpdated, e.ID, p.Month, p.Year, e.Amount.Cents))
	return e, nil
}

// RemoveExpense deletes a single expense.
func (s *ExpenseService) RemoveExpense(ctx context.Context, id string) error {
	e, p, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("get expense: %w", err)
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventExpenseDeleted, id, p.Month, p.Year, e.Amount.Cents))
	return nil
}

// RemoveMonth deletes every expense of p together with its budget.
func (s *ExpenseService) RemoveMonth(ctx context.Context, p core.MonthYear) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := s.store.DeleteMonthYear(ctx, p); err != nil {
		return fmt.Errorf("delete month %s: %w", p, err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventMonthDeleted, "", p.Month, p.Year, 0))
	return nil
}

// SetBudget sets or replaces the budget of p. Zero is allowed.
func (s *ExpenseService) SetBudget(ctx context.Context, p core.MonthYear, amount core.Money) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if amount.Cents < 0 {
		return core.ErrInvalidAmount
	}
	if err := s.store.SetBudget(ctx, p, amount); err != nil {
		return fmt.Errorf("set budget: %w", err)
	}

	s.publish(ctx, amqp.NewExpenseEvent(amqp.EventBudgetSet, "", p.Month, p.Year, amount.Cents))
	return nil
}

// Budget returns the budget of p and whether one is set.
func (s *ExpenseService) Budget(ctx context.Context, p core.MonthYear) (core.Money, bool, error) {
	if err := p.Validate(); err != nil {
		return core.Money{}, false, err
	}
	return s.store.GetBudget(ctx, p)
}

// Months returns every partition holding at least one expense, newest first.
func (s *ExpenseService) Months(ctx context.Context) ([]core.MonthYear, error) {
	return s.store.ListMonthYears(ctx)
}

// MonthExists reports whether p holds at least one expense.
func (s *ExpenseService) MonthExists(ctx context.Context, p core.MonthYear) (bool, error) {
	months, err := s.store.ListMonthYears(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(months, p), nil
}

// OpenMonth validates a partition chosen by the user and reports whether it
// already holds expenses. A new partition only appears in Months once an
// expense is added to it.
func (s *ExpenseService) OpenMonth(ctx context.Context, p core.MonthYear) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	return s.MonthExists(ctx, p)
}

// Expenses returns the expenses of p, most recent first.
func (s *ExpenseService) Expenses(ctx context.Context, p core.MonthYear) ([]core.Expense, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return s.store.ListExpenses(ctx, p)
}

// Expense returns a single expense and the partition it belongs to.
func (s *ExpenseService) Expense(ctx context.Context, id string) (core.Expense, core.MonthYear, error) {
	return s.store.GetExpense(ctx, id)
}

// Summary aggregates p. It is recomputed on every call.
func (s *ExpenseService) Summary(ctx context.Context, p core.MonthYear) (core.ExpenseSummary, error) {
	if err := p.Validate(); err != nil {
		return core.ExpenseSummary{}, err
	}
	return s.store.Summarize(ctx, p)
}

// BudgetStatus compares the spending of p with its budget. It reports false
// when no budget is set.
func (s *ExpenseService) BudgetStatus(ctx context.Context, p core.MonthYear) (core.BudgetStatus, bool, error) {
	budget, ok, err := s.Budget(ctx, p)
	if err != nil || !ok {
		return core.BudgetStatus{}, false, err
	}
	summary, err := s.store.Summarize(ctx, p)
	if err != nil {
		return core.BudgetStatus{}, false, fmt.Errorf("summarize %s: %w", p, err)
	}
	return core.NewBudgetStatus(budget, summary.Total), true, nil
}

// timestamp returns now at the millisecond precision the stores keep.
func (s *ExpenseService) timestamp() time.Time {
	return s.now().Truncate(time.Millisecond)
}

func (s *ExpenseService) publish(ctx context.Context, ev *amqp.ExpenseEvent) {
	if s.publisher == nil {
		return
	}
	// The write already succeeded; a lost event is only logged.
	if err := s.publisher.PublishExpenseEvent(ctx, ev); err != nil {
		fields := applog.NewFields().
			WithPartition(ev.Month, ev.Year).
			WithError(err)
		fields[applog.FieldEventType] = string(ev.Type)
		fields[applog.FieldExpenseID] = ev.ExpenseID
		applog.FromContext(ctx).WithComponent(applog.ComponentExpense).
			ErrorContext(ctx, "Failed to publish expense event", fields.ToSlice()...)
	}
}

// Close closes both storage and publisher connections
func (s *ExpenseService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}

	return nil
}
