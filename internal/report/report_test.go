package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kantong/internal/core"
)

func june() core.ExpenseSummary {
	return core.Summarize(core.NewMonthYear(2025, 6), []core.Expense{
		{ID: "A", Amount: core.FromUnits(50000), PaymentMethod: "Cash", Category: "🍔 Makanan & Minuman"},
		{ID: "B", Amount: core.FromUnits(30000), PaymentMethod: "E-Wallet", Category: "🚗 Transport"},
	})
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 50.000", FormatRupiah(core.FromUnits(50000)))
	assert.Equal(t, "Rp 1.234.567", FormatRupiah(core.FromUnits(1234567)))
	assert.Equal(t, "Rp 0", FormatRupiah(core.Money{}))
	assert.Equal(t, "-Rp 20.000", FormatRupiah(core.FromUnits(-20000)))
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2025, time.August, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "05 Agu 2025 14:30", FormatTimestamp(ts, time.UTC))
}

func TestProgressColor(t *testing.T) {
	assert.Equal(t, colorOK, ProgressColor(79))
	assert.Equal(t, colorWarning, ProgressColor(80))
	assert.Equal(t, colorOver, ProgressColor(100))
	assert.Equal(t, colorOver, ProgressColor(150))
}

func TestSummary(t *testing.T) {
	r := New(&bytes.Buffer{})
	out := r.Summary(june())

	assert.Contains(t, out, "Rangkuman Juni 2025")
	assert.Contains(t, out, "Total Pengeluaran: Rp 80.000")
	assert.Contains(t, out, "Jumlah Transaksi: 2")
	assert.Contains(t, out, "• Cash: Rp 50.000")
	assert.Contains(t, out, "• E-Wallet: Rp 30.000")
	assert.Less(t, strings.Index(out, "Cash"), strings.Index(out, "E-Wallet"))
}

func TestBudget(t *testing.T) {
	r := New(&bytes.Buffer{})

	near := r.Budget(core.NewBudgetStatus(core.FromUnits(100000), core.FromUnits(80000)))
	assert.Contains(t, near, "Budget: Rp 100.000 • ⚠️ Sisa Rp 20.000")
	assert.Contains(t, near, "80%")

	ok := r.Budget(core.NewBudgetStatus(core.FromUnits(100000), core.FromUnits(10000)))
	assert.Contains(t, ok, "✅ Sisa Rp 90.000")

	over := r.Budget(core.NewBudgetStatus(core.FromUnits(100000), core.FromUnits(125000)))
	assert.Contains(t, over, "⚠️ Melebihi budget Rp 25.000")
	assert.Contains(t, over, "125%")
}

func TestChartRows(t *testing.T) {
	rows := ChartRows(june())
	require.Len(t, rows, 2)
	assert.Equal(t, "🍔 Makanan & Minuman", rows[0].Category)
	assert.Equal(t, 62, rows[0].Percent)
	assert.Equal(t, "#FF6B6B", rows[0].Color)
	assert.Equal(t, "🚗 Transport", rows[1].Category)
	assert.Equal(t, 37, rows[1].Percent)
}

func TestChart(t *testing.T) {
	r := New(&bytes.Buffer{})
	out, err := r.Chart(june())
	require.NoError(t, err)
	assert.Contains(t, out, "Grafik Pengeluaran per Kategori")
	assert.Contains(t, out, "Rp 50.000")
	assert.Less(t, strings.Index(out, "Makanan"), strings.Index(out, "Transport"))

	_, err = r.Chart(core.NewExpenseSummary(core.NewMonthYear(2025, 1)))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExpenses(t *testing.T) {
	r := New(&bytes.Buffer{})
	r.Location = time.UTC
	out := r.Expenses(core.NewMonthYear(2025, 6), []core.Expense{{
		ID:            "abc",
		Amount:        core.FromUnits(15000),
		PaymentMethod: "Cash",
		Category:      "🚗 Transport",
		Description:   "ojek",
		Timestamp:     time.Date(2025, time.June, 2, 8, 5, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "Pengeluaran Juni 2025")
	assert.Contains(t, out, "02 Jun 2025 08:05")
	assert.Contains(t, out, "ojek")
	assert.Contains(t, out, "[abc]")
	assert.Contains(t, out, "Total: Rp 15.000")

	empty := r.Expenses(core.NewMonthYear(2025, 7), nil)
	assert.Contains(t, empty, "Belum ada pengeluaran.")
}

func TestMonths(t *testing.T) {
	r := New(&bytes.Buffer{})
	out := r.Months([]core.MonthYear{core.NewMonthYear(2025, 2), core.NewMonthYear(2024, 12)})
	assert.Equal(t, "Februari 2025  (2025-02)\nDesember 2024  (2024-12)\n", out)
}
