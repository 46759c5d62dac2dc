// Package models defines the domain entities for the finance tracker.
package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Entry types shared by categories and transactions.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// MinPasswordLength is the minimum allowed password length at registration.
const MinPasswordLength = 8

// UncategorizedName labels transactions whose category has been deleted.
const UncategorizedName = "Uncategorized"

// Sentinel errors returned by the repository layer so handlers can map
// failures onto distinct HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrDuplicateCategory  = errors.New("category already exists for this type")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionExpired     = errors.New("session expired")
)

// ValidEntryType reports whether t is one of the two known entry types.
func ValidEntryType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// User represents a registered account.
type User struct {
	ID           int
	Name         string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session represents an authenticated login session.
type Session struct {
	Token     string
	UserID    int
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Category represents an income or expense category.
type Category struct {
	ID        int
	Name      string
	Type      string
	CreatedAt time.Time
}

// Transaction represents a single dated money movement.
type Transaction struct {
	ID         int
	Amount     decimal.Decimal
	Type       string
	CategoryID *int
	Category   *Category
	OccurredAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CategoryName returns the joined category name or the orphan placeholder.
func (t *Transaction) CategoryName() string {
	if t.Category != nil {
		return t.Category.Name
	}
	return UncategorizedName
}

// Summary is an income/expense sum pair for a day, month or year.
type Summary struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// CategoryAmount is one row of a category-grouped expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// ProfileSummary aggregates expense activity over an explicit date range.
type ProfileSummary struct {
	TotalExpense decimal.Decimal
	TopCategory  string
	Count        int
}
