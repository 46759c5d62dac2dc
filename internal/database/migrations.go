package database

import (
	"context"
	"fmt"
)

// RunMigrations creates the database schema. Every statement is idempotent,
// so the set can run on every startup instead of the destructive
// drop-and-recreate versioning the mobile client used.
func RunMigrations(ctx context.Context, db PGXDB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (name, type)
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id SERIAL PRIMARY KEY,
			amount DECIMAL(12, 2) NOT NULL,
			type TEXT NOT NULL CHECK (type IN ('income', 'expense')),
			category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
			occurred_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_occurred_at ON transactions(occurred_at)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_category_id ON transactions(category_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_type ON transactions(type)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// Default categories seeded for each entry type.
var (
	DefaultIncomeCategories  = []string{"Salary", "Allowance", "Other Income"}
	DefaultExpenseCategories = []string{"Food", "Transport", "Living", "Other Expense"}
)

// SeedCategories inserts the default category set for any entry type that
// currently has no categories at all. A type the user has populated (or
// deliberately emptied down to their own picks) is left alone.
func SeedCategories(ctx context.Context, db PGXDB) error {
	defaults := map[string][]string{
		"income":  DefaultIncomeCategories,
		"expense": DefaultExpenseCategories,
	}

	for entryType, names := range defaults {
		var count int
		err := db.QueryRow(ctx,
			`SELECT COUNT(*) FROM categories WHERE type = $1`, entryType,
		).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count %s categories: %w", entryType, err)
		}
		if count > 0 {
			continue
		}

		for _, name := range names {
			_, err := db.Exec(ctx,
				`INSERT INTO categories (name, type) VALUES ($1, $2) ON CONFLICT (name, type) DO NOTHING`,
				name, entryType,
			)
			if err != nil {
				return fmt.Errorf("failed to seed category %q/%s: %w", name, entryType, err)
			}
		}
	}

	return nil
}
