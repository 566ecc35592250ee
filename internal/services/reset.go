package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"food-dataset-backend/internal/mailer"
	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/repository"
)

const (
	resetTokenBytes = 32
	resetTokenTTL   = time.Hour
	minPasswordLen  = 6
)

// The request path never reveals whether an email is registered.
const resetRequestMessage = "If an account with that email exists, we've sent a password reset link."

// ResetService implements the password reset flow: opaque single-use tokens
// with a fixed expiry window.
type ResetService struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.TokenRepository
	mail      mailer.Mailer
	baseURL   string
}

// NewResetService creates a new password reset service
func NewResetService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	mail mailer.Mailer,
	baseURL string,
) *ResetService {
	return &ResetService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		mail:      mail,
		baseURL:   baseURL,
	}
}

// RequestReset issues a reset token for the account if it exists and mails
// the reset link. The returned message is identical either way.
func (s *ResetService) RequestReset(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", Invalid("Email is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return resetRequestMessage, nil
		}
		return "", Internal("Failed to look up user", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return "", Internal("Failed to generate reset token", err)
	}

	record := &models.PasswordResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return "", Internal("Failed to store reset token", err)
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password Reset Request",
		Body: fmt.Sprintf("Hello %s,\n\nUse the link below to reset your password. "+
			"The link expires in 1 hour.\n\n%s\n", user.FullName, resetURL),
	}
	if err := s.mail.Send(ctx, msg); err != nil {
		// Still return the generic message so the caller cannot tell
		// whether mail delivery is configured.
		log.Error().Err(err).Msg("Failed to send password reset email")
	}

	return resetRequestMessage, nil
}

// ValidateToken checks a reset token and returns its owner. Expired tokens
// are deleted on detection.
func (s *ResetService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, Invalid("Token is required")
	}

	record, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, Invalid("Invalid reset token")
		}
		return nil, Internal("Failed to look up reset token", err)
	}

	if time.Now().After(record.ExpiresAt) {
		if err := s.tokenRepo.Delete(ctx, token); err != nil {
			log.Error().Err(err).Msg("Failed to purge expired reset token")
		}
		return nil, Invalid("Reset token has expired")
	}

	user, err := s.userRepo.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, Internal("Failed to load token owner", err)
	}
	return user, nil
}

// ResetPassword consumes a token and sets the new password. All of the
// user's outstanding tokens are invalidated.
func (s *ResetService) ResetPassword(ctx context.Context, token, password string) error {
	if token == "" || password == "" {
		return Invalid("Token and password are required")
	}
	if len(password) < minPasswordLen {
		return Invalid("Password must be at least %d characters", minPasswordLen)
	}

	user, err := s.ValidateToken(ctx, token)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Internal("Failed to hash password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return Internal("Failed to update password", err)
	}

	// Single use: drop the consumed token and everything else outstanding
	// for this user.
	if err := s.tokenRepo.DeleteForUser(ctx, user.ID); err != nil {
		return Internal("Failed to invalidate reset tokens", err)
	}
	return nil
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
