package services

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-dataset-backend/internal/mailer"
	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/repository"
)

type captureMailer struct {
	sent []mailer.Message
}

func (m *captureMailer) Send(_ context.Context, msg mailer.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func newResetService(mock pgxmock.PgxPoolIface, mail mailer.Mailer) *ResetService {
	return NewResetService(
		repository.NewUserRepository(mock),
		repository.NewTokenRepository(mock),
		mail,
		"https://admin.example.com",
	)
}

func TestRequestResetStoresTokenAndMailsLink(t *testing.T) {
	mock := newPoolMock(t)
	mail := &captureMailer{}
	svc := newResetService(mock, mail)

	stored := &models.User{ID: 4, FullName: "Ama Mensah", Email: "ama@example.com", UserType: models.UserTypeAdmin}
	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("ama@example.com").
		WillReturnRows(userRows(t, stored))
	mock.ExpectQuery(`INSERT INTO password_reset_tokens`).
		WithArgs(pgxmock.AnyArg(), 4, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	msg, err := svc.RequestReset(context.Background(), "Ama@Example.com")
	require.NoError(t, err)
	assert.Contains(t, msg, "we've sent a password reset link")

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "ama@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Body, "https://admin.example.com/reset-password?token=")
}

func TestRequestResetUnknownEmailIsIndistinguishable(t *testing.T) {
	mock := newPoolMock(t)
	mail := &captureMailer{}
	svc := newResetService(mock, mail)

	stored := &models.User{ID: 4, FullName: "Ama Mensah", Email: "ama@example.com", UserType: models.UserTypeAdmin}
	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("ama@example.com").
		WillReturnRows(userRows(t, stored))
	mock.ExpectQuery(`INSERT INTO password_reset_tokens`).
		WithArgs(pgxmock.AnyArg(), 4, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))
	mock.ExpectQuery(`SELECT .* FROM users WHERE email`).
		WithArgs("ghost@example.com").
		WillReturnError(pgx.ErrNoRows)

	known, err := svc.RequestReset(context.Background(), "ama@example.com")
	require.NoError(t, err)
	unknown, err := svc.RequestReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)

	assert.Equal(t, known, unknown)
	assert.Len(t, mail.sent, 1)
}

func TestValidateTokenDeletesExpiredTokens(t *testing.T) {
	mock := newPoolMock(t)
	svc := newResetService(mock, &captureMailer{})

	mock.ExpectQuery(`SELECT .* FROM password_reset_tokens`).
		WithArgs("stale").
		WillReturnRows(pgxmock.NewRows([]string{"id", "token", "user_id", "expires_at", "created_at"}).
			AddRow(1, "stale", 4, time.Now().Add(-time.Minute), time.Now().Add(-2*time.Hour)))
	mock.ExpectExec(`DELETE FROM password_reset_tokens WHERE token`).
		WithArgs("stale").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	_, err := svc.ValidateToken(context.Background(), "stale")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindInvalid, appErr.Kind)
	assert.Contains(t, appErr.Message, "expired")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestValidateTokenUnknown(t *testing.T) {
	mock := newPoolMock(t)
	svc := newResetService(mock, &captureMailer{})

	mock.ExpectQuery(`SELECT .* FROM password_reset_tokens`).
		WithArgs("nope").
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.ValidateToken(context.Background(), "nope")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindInvalid, appErr.Kind)
}

func TestResetPasswordConsumesAllUserTokens(t *testing.T) {
	mock := newPoolMock(t)
	svc := newResetService(mock, &captureMailer{})

	stored := &models.User{ID: 4, Email: "ama@example.com", UserType: models.UserTypeAdmin}
	mock.ExpectQuery(`SELECT .* FROM password_reset_tokens`).
		WithArgs("fresh").
		WillReturnRows(pgxmock.NewRows([]string{"id", "token", "user_id", "expires_at", "created_at"}).
			AddRow(1, "fresh", 4, time.Now().Add(time.Hour), time.Now()))
	mock.ExpectQuery(`SELECT .* FROM users WHERE id`).
		WithArgs(4).
		WillReturnRows(userRows(t, stored))
	mock.ExpectExec(`UPDATE users SET password`).
		WithArgs(pgxmock.AnyArg(), 4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`DELETE FROM password_reset_tokens WHERE user_id`).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := svc.ResetPassword(context.Background(), "fresh", "newsekret")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetPasswordRejectsShortPasswords(t *testing.T) {
	svc := newResetService(newPoolMock(t), &captureMailer{})

	err := svc.ResetPassword(context.Background(), "fresh", "abc")

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, KindInvalid, appErr.Kind)
}
