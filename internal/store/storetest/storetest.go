// Package storetest holds the behaviour every store.Store must share. Each
// implementation runs it from its own tests.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kantong/internal/core"
	"kantong/internal/store"
)

// Factory returns a fresh, empty store. Cleanup is registered on t.
type Factory func(t *testing.T) store.Store

func ms(v int64) time.Time {
	return time.UnixMilli(v)
}

func expense(id string, units int64, method, category string, ts int64) core.Expense {
	return core.Expense{
		ID:            id,
		Amount:        core.FromUnits(units),
		PaymentMethod: method,
		Category:      category,
		Description:   "desc " + id,
		Timestamp:     ms(ts),
	}
}

// Run executes the shared contract against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()
	june := core.NewMonthYear(2025, 6)

	t.Run("round trip", func(t *testing.T) {
		s := newStore(t)
		e := expense("a", 50000, "Cash", "🍔 Makanan & Minuman", 100)
		require.NoError(t, s.CreateExpense(ctx, e, june))

		got, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, e.ID, got[0].ID)
		assert.Equal(t, e.Amount, got[0].Amount)
		assert.Equal(t, e.PaymentMethod, got[0].PaymentMethod)
		assert.Equal(t, e.Category, got[0].Category)
		assert.Equal(t, e.Description, got[0].Description)
		assert.Equal(t, e.Timestamp.UnixMilli(), got[0].Timestamp.UnixMilli())

		one, p, err := s.GetExpense(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, june, p)
		assert.Equal(t, e.ID, one.ID)
	})

	t.Run("duplicate id rejected across partitions", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateExpense(ctx, expense("a", 1, "Cash", "x", 1), june))
		err := s.CreateExpense(ctx, expense("a", 2, "Cash", "x", 2), core.NewMonthYear(2025, 7))
		assert.ErrorIs(t, err, core.ErrDuplicateID)

		got, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, core.FromUnits(1), got[0].Amount)
	})

	t.Run("ordering most recent first", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateExpense(ctx, expense("t2", 1, "Cash", "x", 200), june))
		require.NoError(t, s.CreateExpense(ctx, expense("t1", 1, "Cash", "x", 100), june))
		require.NoError(t, s.CreateExpense(ctx, expense("t3", 1, "Cash", "x", 300), june))

		got, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"t3", "t2", "t1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	})

	t.Run("empty partition", func(t *testing.T) {
		s := newStore(t)
		got, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		assert.Empty(t, got)

		sum, err := s.Summarize(ctx, june)
		require.NoError(t, err)
		assert.True(t, sum.IsEmpty())
	})

	t.Run("partition isolation", func(t *testing.T) {
		s := newStore(t)
		march, april := core.NewMonthYear(2025, 3), core.NewMonthYear(2025, 4)
		require.NoError(t, s.CreateExpense(ctx, expense("m", 10, "Cash", "x", 1), march))

		got, err := s.ListExpenses(ctx, april)
		require.NoError(t, err)
		assert.Empty(t, got)

		sum, err := s.Summarize(ctx, april)
		require.NoError(t, err)
		assert.Equal(t, 0, sum.Count)

		// Same month number in another year is another partition.
		got, err = s.ListExpenses(ctx, core.NewMonthYear(2024, 3))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update matches by id and keeps partition", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateExpense(ctx, expense("a", 10, "Cash", "x", 1), june))

		changed := expense("a", 25, "E-Wallet", "🚗 Transport", 500)
		changed.Description = "ojek"
		require.NoError(t, s.UpdateExpense(ctx, changed))

		got, p, err := s.GetExpense(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, june, p)
		assert.Equal(t, core.FromUnits(25), got.Amount)
		assert.Equal(t, "E-Wallet", got.PaymentMethod)
		assert.Equal(t, "🚗 Transport", got.Category)
		assert.Equal(t, "ojek", got.Description)
		assert.Equal(t, int64(500), got.Timestamp.UnixMilli())

		assert.ErrorIs(t, s.UpdateExpense(ctx, expense("missing", 1, "Cash", "x", 1)), core.ErrNotFound)
	})

	t.Run("delete missing id leaves rows", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateExpense(ctx, expense("a", 10, "Cash", "x", 1), june))

		assert.ErrorIs(t, s.DeleteExpense(ctx, "nope"), core.ErrNotFound)
		got, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		require.NoError(t, s.DeleteExpense(ctx, "a"))
		assert.ErrorIs(t, s.DeleteExpense(ctx, "a"), core.ErrNotFound)
		_, _, err = s.GetExpense(ctx, "a")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})

	t.Run("month years derived from expenses", func(t *testing.T) {
		s := newStore(t)
		parts := []core.MonthYear{
			core.NewMonthYear(2024, 12),
			core.NewMonthYear(2025, 2),
			core.NewMonthYear(2025, 11),
			core.NewMonthYear(2023, 5),
		}
		for i, p := range parts {
			require.NoError(t, s.CreateExpense(ctx, expense(p.Key(), 1, "Cash", "x", int64(i)), p))
		}
		require.NoError(t, s.CreateExpense(ctx, expense("dup", 1, "Cash", "x", 9), core.NewMonthYear(2025, 2)))
		// A budget alone does not make a partition exist.
		require.NoError(t, s.SetBudget(ctx, core.NewMonthYear(2026, 1), core.FromUnits(5)))

		got, err := s.ListMonthYears(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.MonthYear{
			core.NewMonthYear(2025, 11),
			core.NewMonthYear(2025, 2),
			core.NewMonthYear(2024, 12),
			core.NewMonthYear(2023, 5),
		}, got)
	})

	t.Run("delete month year", func(t *testing.T) {
		s := newStore(t)
		july := core.NewMonthYear(2025, 7)
		require.NoError(t, s.CreateExpense(ctx, expense("a", 1, "Cash", "x", 1), june))
		require.NoError(t, s.CreateExpense(ctx, expense("b", 1, "Cash", "x", 2), june))
		require.NoError(t, s.CreateExpense(ctx, expense("c", 1, "Cash", "x", 3), july))
		require.NoError(t, s.SetBudget(ctx, june, core.FromUnits(100)))

		require.NoError(t, s.DeleteMonthYear(ctx, june))

		months, err := s.ListMonthYears(ctx)
		require.NoError(t, err)
		assert.Equal(t, []core.MonthYear{july}, months)

		_, ok, err := s.GetBudget(ctx, june)
		require.NoError(t, err)
		assert.False(t, ok)

		assert.ErrorIs(t, s.DeleteMonthYear(ctx, june), core.ErrNotFound)
	})

	t.Run("summary", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateExpense(ctx, expense("A", 50000, "Cash", "🍔 Makanan & Minuman", 100), june))
		require.NoError(t, s.CreateExpense(ctx, expense("B", 30000, "E-Wallet", "🚗 Transport", 200), june))
		require.NoError(t, s.CreateExpense(ctx, expense("X", 999, "Cash", "x", 1), core.NewMonthYear(2025, 5)))

		list, err := s.ListExpenses(ctx, june)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "B", list[0].ID)
		assert.Equal(t, "A", list[1].ID)

		sum, err := s.Summarize(ctx, june)
		require.NoError(t, err)
		assert.Equal(t, core.FromUnits(80000), sum.Total)
		assert.Equal(t, 2, sum.Count)
		assert.Equal(t, map[string]core.Money{
			"Cash":     core.FromUnits(50000),
			"E-Wallet": core.FromUnits(30000),
		}, sum.ByPaymentMethod)

		var listed, byMethod, byCategory core.Money
		for _, e := range list {
			listed = listed.Add(e.Amount)
		}
		for _, v := range sum.ByPaymentMethod {
			byMethod = byMethod.Add(v)
		}
		for _, v := range sum.ByCategory {
			byCategory = byCategory.Add(v)
		}
		assert.Equal(t, sum.Total, listed)
		assert.Equal(t, sum.Total, byMethod)
		assert.Equal(t, sum.Total, byCategory)
	})

	t.Run("budget upsert", func(t *testing.T) {
		s := newStore(t)
		_, ok, err := s.GetBudget(ctx, june)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.SetBudget(ctx, june, core.FromUnits(100)))
		require.NoError(t, s.SetBudget(ctx, june, core.FromUnits(200)))

		got, ok, err := s.GetBudget(ctx, june)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, core.FromUnits(200), got)
	})
}
