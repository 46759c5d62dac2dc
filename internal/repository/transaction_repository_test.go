package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addEntry(
	t *testing.T,
	repo *TransactionRepository,
	amount int64,
	entryType string,
	categoryID *int,
	occurredAt time.Time,
) *models.Transaction {
	t.Helper()

	tr := &models.Transaction{
		Amount:     decimal.NewFromInt(amount),
		Type:       entryType,
		CategoryID: categoryID,
		OccurredAt: occurredAt,
	}
	require.NoError(t, repo.Create(context.Background(), tr))
	return tr
}

func TestTransactionRepository_CRUD(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)
	categories := NewCategoryRepository(tx)

	food, err := categories.Create(ctx, "Food", models.TypeExpense)
	require.NoError(t, err)

	t.Run("creates and retrieves with category join", func(t *testing.T) {
		tr := addEntry(t, repo, 50000, models.TypeExpense, &food.ID, day(2024, 6, 1))
		require.NotZero(t, tr.ID)

		fetched, err := repo.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(50000).Equal(fetched.Amount))
		require.Equal(t, models.TypeExpense, fetched.Type)
		require.NotNil(t, fetched.Category)
		require.Equal(t, "Food", fetched.Category.Name)
	})

	t.Run("creates without category", func(t *testing.T) {
		tr := addEntry(t, repo, 1000, models.TypeIncome, nil, day(2024, 6, 2))

		fetched, err := repo.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		require.Nil(t, fetched.CategoryID)
		require.Equal(t, models.UncategorizedName, fetched.CategoryName())
	})

	t.Run("updates amount and category", func(t *testing.T) {
		tr := addEntry(t, repo, 100, models.TypeExpense, &food.ID, day(2024, 6, 3))

		require.NoError(t, repo.Update(ctx, tr.ID, decimal.NewFromInt(200), nil))

		fetched, err := repo.GetByID(ctx, tr.ID)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(200).Equal(fetched.Amount))
		require.Nil(t, fetched.CategoryID)
	})

	t.Run("deletes entry", func(t *testing.T) {
		tr := addEntry(t, repo, 100, models.TypeExpense, nil, day(2024, 6, 4))

		require.NoError(t, repo.Delete(ctx, tr.ID))

		_, err := repo.GetByID(ctx, tr.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999999)
		require.ErrorIs(t, err, models.ErrNotFound)
		require.ErrorIs(t, repo.Update(ctx, 999999, decimal.NewFromInt(1), nil), models.ErrNotFound)
		require.ErrorIs(t, repo.Delete(ctx, 999999), models.ErrNotFound)
	})
}

func TestTransactionRepository_ListByRange(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)

	target := day(2025, 3, 10)
	addEntry(t, repo, 1, models.TypeExpense, nil, target.Add(9*time.Hour))
	addEntry(t, repo, 2, models.TypeExpense, nil, target.Add(12*time.Hour))
	addEntry(t, repo, 3, models.TypeIncome, nil, target.Add(15*time.Hour))
	addEntry(t, repo, 4, models.TypeExpense, nil, target.Add(18*time.Hour))
	// Adjacent days must not bleed in.
	addEntry(t, repo, 99, models.TypeExpense, nil, day(2025, 3, 9))
	addEntry(t, repo, 99, models.TypeExpense, nil, day(2025, 3, 11))

	start, end := target, target.AddDate(0, 0, 1)

	t.Run("lists the day newest first", func(t *testing.T) {
		list, err := repo.ListByRange(ctx, start, end, 0)
		require.NoError(t, err)
		require.Len(t, list, 4)
		for i := 1; i < len(list); i++ {
			require.False(t, list[i-1].OccurredAt.Before(list[i].OccurredAt))
		}
	})

	t.Run("recent limit caps the result", func(t *testing.T) {
		list, err := repo.ListByRange(ctx, start, end, RecentLimit)
		require.NoError(t, err)
		require.Len(t, list, RecentLimit)
		// Newest three of the day.
		require.True(t, decimal.NewFromInt(4).Equal(list[0].Amount))
	})

	t.Run("filters by type", func(t *testing.T) {
		list, err := repo.ListByRangeAndType(ctx, start, end, models.TypeIncome)
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.True(t, decimal.NewFromInt(3).Equal(list[0].Amount))
	})
}

func TestTransactionRepository_SummarizeRange(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)
	categories := NewCategoryRepository(tx)

	salary, err := categories.Create(ctx, "Salary", models.TypeIncome)
	require.NoError(t, err)
	food, err := categories.Create(ctx, "Food", models.TypeExpense)
	require.NoError(t, err)

	t.Run("empty range sums to zero", func(t *testing.T) {
		start, end := day(1999, 1, 1), day(1999, 1, 2)
		summary, err := repo.SummarizeRange(ctx, start, end)
		require.NoError(t, err)
		require.True(t, summary.Income.IsZero())
		require.True(t, summary.Expense.IsZero())
	})

	t.Run("insert shows up in its day exactly once", func(t *testing.T) {
		addEntry(t, repo, 50000, models.TypeExpense, &food.ID, day(2024, 6, 1))

		summary, err := repo.SummarizeRange(ctx, day(2024, 6, 1), day(2024, 6, 2))
		require.NoError(t, err)
		require.True(t, summary.Income.IsZero())
		require.True(t, decimal.NewFromInt(50000).Equal(summary.Expense))
	})

	t.Run("sums both types", func(t *testing.T) {
		addEntry(t, repo, 3000000, models.TypeIncome, &salary.ID, day(2024, 6, 25))

		start, end := day(2024, 6, 1), day(2024, 7, 1)
		summary, err := repo.SummarizeRange(ctx, start, end)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(3000000).Equal(summary.Income))
		require.True(t, decimal.NewFromInt(50000).Equal(summary.Expense))
	})

	t.Run("yearly equals the sum of its months", func(t *testing.T) {
		addEntry(t, repo, 111, models.TypeExpense, &food.ID, day(2024, 1, 15))
		addEntry(t, repo, 222, models.TypeExpense, &food.ID, day(2024, 2, 15))
		addEntry(t, repo, 333, models.TypeIncome, &salary.ID, day(2024, 12, 31))

		income, expense := decimal.Zero, decimal.Zero
		for m := time.January; m <= time.December; m++ {
			start := time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC)
			monthly, err := repo.SummarizeRange(ctx, start, start.AddDate(0, 1, 0))
			require.NoError(t, err)
			income = income.Add(monthly.Income)
			expense = expense.Add(monthly.Expense)
		}

		yearly, err := repo.SummarizeRange(ctx, day(2024, 1, 1), day(2025, 1, 1))
		require.NoError(t, err)
		require.True(t, yearly.Income.Equal(income))
		require.True(t, yearly.Expense.Equal(expense))
	})
}

func TestTransactionRepository_ExpenseByCategory(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)
	categories := NewCategoryRepository(tx)

	food, err := categories.Create(ctx, "Food", models.TypeExpense)
	require.NoError(t, err)
	transport, err := categories.Create(ctx, "Transport", models.TypeExpense)
	require.NoError(t, err)
	salary, err := categories.Create(ctx, "Salary", models.TypeIncome)
	require.NoError(t, err)

	addEntry(t, repo, 30000, models.TypeExpense, &food.ID, day(2024, 6, 1))
	addEntry(t, repo, 20000, models.TypeExpense, &food.ID, day(2024, 6, 15))
	addEntry(t, repo, 10000, models.TypeExpense, &transport.ID, day(2024, 6, 20))
	// Income must never appear in an expense breakdown.
	addEntry(t, repo, 3000000, models.TypeIncome, &salary.ID, day(2024, 6, 25))

	start, end := day(2024, 6, 1), day(2024, 7, 1)

	t.Run("groups and orders by total descending", func(t *testing.T) {
		totals, err := repo.ExpenseByCategory(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		require.Equal(t, "Food", totals[0].Name)
		require.True(t, decimal.NewFromInt(50000).Equal(totals[0].Amount))
		require.Equal(t, "Transport", totals[1].Name)
		require.True(t, decimal.NewFromInt(10000).Equal(totals[1].Amount))
	})

	t.Run("deleting an unreferenced category changes nothing", func(t *testing.T) {
		unused, err := categories.Create(ctx, "Unused", models.TypeExpense)
		require.NoError(t, err)
		require.NoError(t, categories.Delete(ctx, unused.ID))

		totals, err := repo.ExpenseByCategory(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, totals, 2)

		summary, err := repo.SummarizeRange(ctx, start, end)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(60000).Equal(summary.Expense))
	})

	t.Run("rename preserves referencing transactions", func(t *testing.T) {
		require.NoError(t, categories.Rename(ctx, food.ID, "Groceries"))

		totals, err := repo.ExpenseByCategory(ctx, start, end)
		require.NoError(t, err)
		require.Equal(t, "Groceries", totals[0].Name)
		require.True(t, decimal.NewFromInt(50000).Equal(totals[0].Amount))

		require.NoError(t, categories.Rename(ctx, food.ID, "Food"))
	})

	t.Run("orphaned expenses group under the placeholder", func(t *testing.T) {
		require.NoError(t, categories.Delete(ctx, transport.ID))

		totals, err := repo.ExpenseByCategory(ctx, start, end)
		require.NoError(t, err)
		require.Len(t, totals, 2)
		require.Equal(t, models.UncategorizedName, totals[1].Name)
		require.True(t, decimal.NewFromInt(10000).Equal(totals[1].Amount))

		// Date-scoped sums are unaffected by the orphaning.
		summary, err := repo.SummarizeRange(ctx, start, end)
		require.NoError(t, err)
		require.True(t, decimal.NewFromInt(60000).Equal(summary.Expense))
	})
}

func TestTransactionRepository_TopCategory(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)
	categories := NewCategoryRepository(tx)

	t.Run("dash when the range has no expenses", func(t *testing.T) {
		top, err := repo.TopCategory(ctx, day(1999, 1, 1), day(1999, 2, 1))
		require.NoError(t, err)
		require.Equal(t, NoTopCategory, top)
	})

	t.Run("returns the largest expense category", func(t *testing.T) {
		food, err := categories.Create(ctx, "Food", models.TypeExpense)
		require.NoError(t, err)
		transport, err := categories.Create(ctx, "Transport", models.TypeExpense)
		require.NoError(t, err)

		addEntry(t, repo, 70000, models.TypeExpense, &food.ID, day(2024, 6, 1))
		addEntry(t, repo, 30000, models.TypeExpense, &transport.ID, day(2024, 6, 2))

		top, err := repo.TopCategory(ctx, day(2024, 6, 1), day(2024, 7, 1))
		require.NoError(t, err)
		require.Equal(t, "Food", top)
	})
}

func TestTransactionRepository_ProfileSummary(t *testing.T) {
	tx := database.TestTx(t)
	ctx := context.Background()
	repo := NewTransactionRepository(tx)
	categories := NewCategoryRepository(tx)

	food, err := categories.Create(ctx, "Food", models.TypeExpense)
	require.NoError(t, err)

	addEntry(t, repo, 30000, models.TypeExpense, &food.ID, day(2024, 6, 1))
	addEntry(t, repo, 20000, models.TypeExpense, &food.ID, day(2024, 6, 10))
	addEntry(t, repo, 1000000, models.TypeIncome, nil, day(2024, 6, 25))

	summary, err := repo.ProfileSummary(ctx, day(2024, 6, 1), day(2024, 7, 1))
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(50000).Equal(summary.TotalExpense))
	require.Equal(t, "Food", summary.TopCategory)
	require.Equal(t, 2, summary.Count)
}
