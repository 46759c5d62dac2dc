package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

// RecentLimit is the number of rows shown in the dashboard's recent list.
const RecentLimit = 3

// NoTopCategory is returned when a range contains no expense at all.
const NoTopCategory = "-"

// TransactionRepository handles transaction database operations, including
// the date-range aggregates behind summaries, breakdowns and the profile
// screen.
type TransactionRepository struct {
	db database.PGXDB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db database.PGXDB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create adds a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tr *models.Transaction) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (amount, type, category_id, occurred_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, tr.Amount, tr.Type, tr.CategoryID, tr.OccurredAt,
	).Scan(&tr.ID, &tr.CreatedAt, &tr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by ID, with its category joined in when
// it still exists.
func (r *TransactionRepository) GetByID(ctx context.Context, id int) (*models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.amount, t.type, t.category_id, t.occurred_at, t.created_at, t.updated_at,
		       c.id, c.name, c.type, c.created_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	defer rows.Close()

	transactions, err := scanTransactions(rows)
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, models.ErrNotFound
	}
	return &transactions[0], nil
}

// ListByRange retrieves transactions inside [start, end), newest first.
// limit caps the result (pass RecentLimit for the dashboard's recent list,
// 0 for all rows). Orphaned transactions are included with a nil category.
func (r *TransactionRepository) ListByRange(
	ctx context.Context,
	start, end time.Time,
	limit int,
) ([]models.Transaction, error) {
	query := `
		SELECT t.id, t.amount, t.type, t.category_id, t.occurred_at, t.created_at, t.updated_at,
		       c.id, c.name, c.type, c.created_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.occurred_at >= $1 AND t.occurred_at < $2
		ORDER BY t.occurred_at DESC, t.id DESC
	`
	args := []any{start, end}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListByRangeAndType retrieves one entry type's transactions inside
// [start, end), newest first. Used by the monthly and yearly detail lists.
func (r *TransactionRepository) ListByRangeAndType(
	ctx context.Context,
	start, end time.Time,
	entryType string,
) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT t.id, t.amount, t.type, t.category_id, t.occurred_at, t.created_at, t.updated_at,
		       c.id, c.name, c.type, c.created_at
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.occurred_at >= $1 AND t.occurred_at < $2 AND t.type = $3
		ORDER BY t.occurred_at DESC, t.id DESC
	`, start, end, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by type: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// Update modifies a transaction's amount and category.
func (r *TransactionRepository) Update(ctx context.Context, id int, amount decimal.Decimal, categoryID *int) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE transactions SET amount = $2, category_id = $3, updated_at = NOW()
		WHERE id = $1
	`, id, amount, categoryID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a transaction by ID.
func (r *TransactionRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SummarizeRange sums amounts grouped by entry type over [start, end).
// Types with no rows come back as zero. The same query serves the daily,
// monthly and yearly summaries; only the range differs, which keeps the
// three granularities consistent with each other by construction.
func (r *TransactionRepository) SummarizeRange(ctx context.Context, start, end time.Time) (models.Summary, error) {
	summary := models.Summary{
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}

	rows, err := r.db.Query(ctx, `
		SELECT type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2
		GROUP BY type
	`, start, end)
	if err != nil {
		return summary, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryType string
		var total decimal.Decimal
		if err := rows.Scan(&entryType, &total); err != nil {
			return summary, fmt.Errorf("failed to scan summary row: %w", err)
		}
		switch entryType {
		case models.TypeIncome:
			summary.Income = total
		case models.TypeExpense:
			summary.Expense = total
		}
	}

	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("error iterating summary rows: %w", err)
	}
	return summary, nil
}

// ExpenseByCategory sums expenses per category over [start, end), largest
// first. Orphaned expenses are grouped under the placeholder name so the
// breakdown total still matches the range's expense sum.
func (r *TransactionRepository) ExpenseByCategory(
	ctx context.Context,
	start, end time.Time,
) ([]models.CategoryAmount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT COALESCE(c.name, $3), SUM(t.amount) AS total
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.occurred_at >= $1 AND t.occurred_at < $2 AND t.type = 'expense'
		GROUP BY c.id, c.name
		ORDER BY total DESC
	`, start, end, models.UncategorizedName)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense breakdown: %w", err)
	}
	defer rows.Close()

	var totals []models.CategoryAmount
	for rows.Next() {
		var ca models.CategoryAmount
		if err := rows.Scan(&ca.Name, &ca.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan breakdown row: %w", err)
		}
		totals = append(totals, ca)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating breakdown rows: %w", err)
	}
	return totals, nil
}

// TopCategory returns the category with the largest expense sum inside
// [start, end), or NoTopCategory when the range holds no expenses.
func (r *TransactionRepository) TopCategory(ctx context.Context, start, end time.Time) (string, error) {
	var name string
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(c.name, $3)
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id
		WHERE t.occurred_at >= $1 AND t.occurred_at < $2 AND t.type = 'expense'
		GROUP BY c.id, c.name
		ORDER BY SUM(t.amount) DESC
		LIMIT 1
	`, start, end, models.UncategorizedName).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return NoTopCategory, nil
		}
		return "", fmt.Errorf("failed to get top category: %w", err)
	}
	return name, nil
}

// CountExpenses counts expense transactions inside [start, end).
func (r *TransactionRepository) CountExpenses(ctx context.Context, start, end time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2 AND type = 'expense'
	`, start, end).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count expenses: %w", err)
	}
	return count, nil
}

// TotalExpense sums expense amounts inside [start, end).
func (r *TransactionRepository) TotalExpense(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2 AND type = 'expense'
	`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total expenses: %w", err)
	}
	return total, nil
}

// ProfileSummary gathers the profile screen's expense aggregates over
// [start, end): total spent, the busiest category and the entry count.
func (r *TransactionRepository) ProfileSummary(ctx context.Context, start, end time.Time) (models.ProfileSummary, error) {
	total, err := r.TotalExpense(ctx, start, end)
	if err != nil {
		return models.ProfileSummary{}, err
	}
	top, err := r.TopCategory(ctx, start, end)
	if err != nil {
		return models.ProfileSummary{}, err
	}
	count, err := r.CountExpenses(ctx, start, end)
	if err != nil {
		return models.ProfileSummary{}, err
	}
	return models.ProfileSummary{
		TotalExpense: total,
		TopCategory:  top,
		Count:        count,
	}, nil
}

// scanTransactions is a helper to scan transaction rows with category joins.
func scanTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	var transactions []models.Transaction
	for rows.Next() {
		var tr models.Transaction
		var categoryID, catID *int
		var catName, catType *string
		var catCreatedAt *time.Time

		if err := rows.Scan(
			&tr.ID, &tr.Amount, &tr.Type, &categoryID, &tr.OccurredAt, &tr.CreatedAt, &tr.UpdatedAt,
			&catID, &catName, &catType, &catCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tr.CategoryID = categoryID
		if catID != nil {
			tr.Category = &models.Category{
				ID:        *catID,
				Name:      *catName,
				Type:      *catType,
				CreatedAt: *catCreatedAt,
			}
		}
		transactions = append(transactions, tr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}
