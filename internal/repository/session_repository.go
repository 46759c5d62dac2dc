package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"gitlab.com/yelinaung/moneybook/internal/database"
	"gitlab.com/yelinaung/moneybook/internal/models"
)

// SessionRepository handles login session database operations.
type SessionRepository struct {
	db database.PGXDB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db database.PGXDB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create issues a new session for the user with the given lifetime.
func (r *SessionRepository) Create(ctx context.Context, userID int, ttl time.Duration) (*models.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:  token,
		UserID: userID,
	}
	err = r.db.QueryRow(ctx, `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES ($1, $2, NOW() + $3)
		RETURNING expires_at, created_at
	`, token, userID, ttl).Scan(&session.ExpiresAt, &session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetUserByToken resolves a session token to its account. Returns
// models.ErrSessionExpired for stale sessions and models.ErrNotFound for
// unknown tokens (including sessions removed by account deletion).
func (r *SessionRepository) GetUserByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	var expiresAt time.Time
	err := r.db.QueryRow(ctx, `
		SELECT u.id, u.name, u.username, u.password_hash, u.created_at, u.updated_at, s.expires_at
		FROM sessions s
		JOIN users u ON s.user_id = u.id
		WHERE s.token = $1
	`, token).Scan(&user.ID, &user.Name, &user.Username, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if !time.Now().Before(expiresAt) {
		return nil, models.ErrSessionExpired
	}
	return &user, nil
}

// Delete removes a single session (logout).
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their expiry. Returns the number of
// deleted rows.
func (r *SessionRepository) DeleteExpired(ctx context.Context) (int, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// newToken generates a random 32-byte session token, hex encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
