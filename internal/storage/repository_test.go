package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kantong/internal/core"
	"kantong/internal/store"
	"kantong/internal/store/storetest"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "kantong.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepositoryContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return testRepo(t)
	})
}

func TestNewSQLiteRepositoryCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "kantong.db")
	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	v, err := SchemaVersionOf(path)
	require.NoError(t, err)
	assert.Equal(t, uint(SchemaVersion), v)
}

func TestReopenIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kantong.db")
	ctx := context.Background()
	p := core.NewMonthYear(2025, 1)

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.CreateExpense(ctx, core.Expense{
		ID: "a", Amount: core.FromUnits(10), PaymentMethod: "Cash", Category: "🚗 Transport", Description: "bus",
	}, p))
	require.NoError(t, repo.SetBudget(ctx, p, core.FromUnits(100)))
	require.NoError(t, repo.Close())

	require.NoError(t, RunMigrations(path))

	repo, err = NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.ListExpenses(ctx, p)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "🚗 Transport", got[0].Category)

	budget, ok, err := repo.GetBudget(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, core.FromUnits(100), budget)
}

func TestUpgradeFromMinimalSchemaBackfillsCategory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kantong.db")
	require.NoError(t, MigrateToVersion(path, 1))

	v, err := SchemaVersionOf(path)
	require.NoError(t, err)
	require.Equal(t, uint(1), v)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO expenses (id, amount_cents, payment_method, description, month, year, timestamp)
		VALUES ('old', 500000, 'Cash', 'Makan siang', 3, 2024, 1700000000000)`)
	require.NoError(t, err)

	var budgetTables int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='budget'`).Scan(&budgetTables))
	assert.Equal(t, 0, budgetTables)
	require.NoError(t, db.Close())

	repo, err := NewSQLiteRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	got, err := repo.ListExpenses(ctx, core.NewMonthYear(2024, 3))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, core.DefaultCategory, got[0].Category)
	assert.Equal(t, core.FromUnits(5000), got[0].Amount)
	assert.Equal(t, int64(1700000000000), got[0].Timestamp.UnixMilli())

	_, ok, err := repo.GetBudget(ctx, core.NewMonthYear(2024, 3))
	require.NoError(t, err)
	assert.False(t, ok)

	sum, err := repo.Summarize(ctx, core.NewMonthYear(2024, 3))
	require.NoError(t, err)
	assert.Equal(t, map[string]core.Money{core.DefaultCategory: core.FromUnits(5000)}, sum.ByCategory)
}

func TestSingleBudgetRowPerMonth(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	p := core.NewMonthYear(2025, 6)

	require.NoError(t, repo.SetBudget(ctx, p, core.FromUnits(100)))
	require.NoError(t, repo.SetBudget(ctx, p, core.FromUnits(200)))

	var rows int
	require.NoError(t, repo.db.QueryRow(`SELECT COUNT(*) FROM budget WHERE month = 6 AND year = 2025`).Scan(&rows))
	assert.Equal(t, 1, rows)
}

func TestErrorsWrapSentinels(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	err := repo.DeleteExpense(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Contains(t, err.Error(), "missing")

	_, _, err = repo.GetExpense(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestClosedRepositoryReportsStorageError(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Close())

	_, err := repo.ListMonthYears(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNotFound)
}
