// Package store declares the persistence ports the expense service depends on.
// The SQLite repository and the in-memory store both implement Store.
package store

import (
	"context"

	"kantong/internal/core"
)

type (
	ExpenseWriter interface {
		// CreateExpense inserts e into partition p. It returns core.ErrDuplicateID
		// when the id is already taken anywhere in the store.
		CreateExpense(ctx context.Context, e core.Expense, p core.MonthYear) error
		// UpdateExpense overwrites every field but the id and the partition of
		// the row with e.ID. It returns core.ErrNotFound when no row matches.
		UpdateExpense(ctx context.Context, e core.Expense) error
		// DeleteExpense returns core.ErrNotFound when no row matches.
		DeleteExpense(ctx context.Context, id string) error
		// DeleteMonthYear removes every expense of p and then its budget. It
		// returns core.ErrNotFound when p had no expenses.
		DeleteMonthYear(ctx context.Context, p core.MonthYear) error
	}

	// ExpenseLister returns the expenses of a partition, most recent first.
	ExpenseLister interface {
		ListExpenses(ctx context.Context, p core.MonthYear) ([]core.Expense, error)
		GetExpense(ctx context.Context, id string) (core.Expense, core.MonthYear, error)
	}

	// MonthLister returns every partition with at least one expense, most recent first.
	MonthLister interface {
		ListMonthYears(ctx context.Context) ([]core.MonthYear, error)
	}

	// SummaryReader aggregates a partition on demand.
	SummaryReader interface {
		Summarize(ctx context.Context, p core.MonthYear) (core.ExpenseSummary, error)
	}

	BudgetStore interface {
		// SetBudget replaces any budget already set for p.
		SetBudget(ctx context.Context, p core.MonthYear, amount core.Money) error
		// GetBudget reports false when no budget is set for p.
		GetBudget(ctx context.Context, p core.MonthYear) (core.Money, bool, error)
	}

	Store interface {
		ExpenseWriter
		ExpenseLister
		MonthLister
		SummaryReader
		BudgetStore
		Close() error
	}
)
