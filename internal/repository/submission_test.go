package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/taxonomy"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

func TestSubmissionCreateWritesOneMetaRow(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)

	size := int64(1234)
	mime := "image/jpeg"
	sub := &models.Submission{
		DishName:     taxonomy.DishKoko,
		Region:       "VOLTA",
		FoodObtained: "Home kitchen",
		Images: []models.SubmissionImage{
			{URL: "https://cdn.example.com/a.jpg", Filename: "a.jpg", Type: models.ImageMain, Size: &size, MimeType: &mime},
		},
		KokoMeta: &models.KokoMeta{KokoItems: []string{"Milk"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(submissionArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(7, time.Now()))
	mock.ExpectQuery(`INSERT INTO submission_images`).
		WithArgs(7, "https://cdn.example.com/a.jpg", "a.jpg", models.ImageMain, &size, &mime).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO koko_meta`).
		WithArgs(7, []string{"Milk"}, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, 7, sub.ID)
	assert.Equal(t, 7, sub.Images[0].SubmissionID)
	assert.Equal(t, 11, sub.Images[0].ID)
	assert.Equal(t, 3, sub.KokoMeta.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionCreateRejectsMissingMeta(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(submissionArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(1, time.Now()))
	mock.ExpectRollback()

	sub := &models.Submission{
		DishName:     taxonomy.DishKoko,
		Region:       "VOLTA",
		FoodObtained: "Home kitchen",
	}
	err := repo.Create(context.Background(), sub)
	assert.ErrorContains(t, err, "no category metadata")
}

func TestSubmissionCreateRollsBackOnImageFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(submissionArgs()...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).
			AddRow(1, time.Now()))
	mock.ExpectQuery(`INSERT INTO submission_images`).
		WithArgs(1, "x", "x.jpg", models.ImageMain, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	sub := &models.Submission{
		DishName:     taxonomy.DishKoko,
		Region:       "VOLTA",
		FoodObtained: "Home kitchen",
		Images:       []models.SubmissionImage{{URL: "x", Filename: "x.jpg", Type: models.ImageMain}},
		KokoMeta:     &models.KokoMeta{},
	}
	err := repo.Create(context.Background(), sub)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionGetByIDNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)

	mock.ExpectQuery(`SELECT .* FROM submissions WHERE id`).
		WithArgs(42).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSubmissionListEmpty(t *testing.T) {
	mock := newMock(t)
	repo := NewSubmissionRepository(mock)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM submissions`).
		WithArgs("VOLTA").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT .* FROM submissions`).
		WithArgs("VOLTA").
		WillReturnRows(pgxmock.NewRows(submissionRowColumns()))

	subs, total, err := repo.List(context.Background(), ListFilter{Region: "VOLTA", Limit: 10})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, subs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// submissionArgs matches the 11 bind parameters of the submission INSERT.
func submissionArgs() []any {
	args := make([]any, 11)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func submissionRowColumns() []string {
	return []string{
		"id", "dish_name", "no_person_in_image", "region", "town",
		"food_obtained", "food_obtained_other", "wants_acknowledgement",
		"acknowledged_name", "acknowledged_email", "acknowledged_phone",
		"accuracy_confirmed", "created_at",
	}
}
