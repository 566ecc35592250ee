package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"food-dataset-backend/internal/models"
)

// TokenRepository handles database operations for password reset tokens
type TokenRepository struct {
	db Querier
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db Querier) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a new reset token.
func (r *TokenRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO password_reset_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, token.Token, token.UserID, token.ExpiresAt).Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// GetByToken retrieves a reset token by its opaque value.
func (r *TokenRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.QueryRow(ctx, `
		SELECT id, token, user_id, expires_at, created_at
		FROM password_reset_tokens
		WHERE token = $1
	`, token).Scan(&t.ID, &t.Token, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return &t, nil
}

// Delete removes a single token.
func (r *TokenRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}

// DeleteForUser removes all outstanding tokens for a user.
func (r *TokenRepository) DeleteForUser(ctx context.Context, userID int) error {
	_, err := r.db.Exec(ctx, `DELETE FROM password_reset_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user reset tokens: %w", err)
	}
	return nil
}
