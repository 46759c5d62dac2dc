package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

// CategoryRepository handles category database operations.
type CategoryRepository struct {
	db database.PGXDB
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(db database.PGXDB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByType retrieves all categories of one entry type, alphabetically.
func (r *CategoryRepository) ListByType(ctx context.Context, entryType string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, created_at FROM categories
		WHERE type = $1
		ORDER BY name
	`, entryType)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Type, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	var cat models.Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, type, created_at FROM categories WHERE id = $1
	`, id).Scan(&cat.ID, &cat.Name, &cat.Type, &cat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &cat, nil
}

// Exists reports whether a category with this name already exists within
// the entry type. Uniqueness is scoped per type: "Food"/income and
// "Food"/expense may coexist.
func (r *CategoryRepository) Exists(ctx context.Context, name, entryType string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND type = $2)
	`, name, entryType).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category existence: %w", err)
	}
	return exists, nil
}

// Create adds a new category, guarding against duplicates inside a
// transaction. Returns models.ErrDuplicateCategory when the (name, type)
// pair is taken.
func (r *CategoryRepository) Create(ctx context.Context, name, entryType string) (*models.Category, error) {
	beginner, ok := r.db.(database.TxBeginner)
	if !ok {
		return nil, fmt.Errorf("create category: database handle cannot begin transactions")
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var exists bool
	err = tx.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND type = $2)
	`, name, entryType).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check category existence: %w", err)
	}
	if exists {
		return nil, models.ErrDuplicateCategory
	}

	var cat models.Category
	err = tx.QueryRow(ctx, `
		INSERT INTO categories (name, type) VALUES ($1, $2)
		RETURNING id, name, type, created_at
	`, name, entryType).Scan(&cat.ID, &cat.Name, &cat.Type, &cat.CreatedAt)
	if err != nil {
		// The unique constraint backs up the existence check for writers
		// racing between the two statements.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, models.ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit category creation: %w", err)
	}
	return &cat, nil
}

// Rename changes a category's name. The type never changes after creation.
func (r *CategoryRepository) Rename(ctx context.Context, id int, name string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE categories SET name = $2 WHERE id = $1
	`, id, name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.ErrDuplicateCategory
		}
		return fmt.Errorf("failed to rename category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a category by ID. Referencing transactions are not
// deleted; their category_id is nulled out by the FK and they surface as
// "Uncategorized" in lists and breakdowns.
func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// EnsureDefaults seeds the default category set for the entry type when it
// has none, mirroring the first-run behavior of the mobile client.
func (r *CategoryRepository) EnsureDefaults(ctx context.Context, entryType string) error {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM categories WHERE type = $1`, entryType,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	defaults := database.DefaultExpenseCategories
	if entryType == models.TypeIncome {
		defaults = database.DefaultIncomeCategories
	}
	for _, name := range defaults {
		_, err := r.db.Exec(ctx,
			`INSERT INTO categories (name, type) VALUES ($1, $2) ON CONFLICT (name, type) DO NOTHING`,
			name, entryType,
		)
		if err != nil {
			return fmt.Errorf("failed to seed category %q: %w", name, err)
		}
	}
	return nil
}
