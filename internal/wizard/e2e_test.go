package wizard

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-dataset-backend/internal/config"
	"food-dataset-backend/internal/repository"
	"food-dataset-backend/internal/services"
	"food-dataset-backend/internal/storage"
	"food-dataset-backend/internal/taxonomy"
)

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

// Drives a full wizard session into the real ingestion service, with only
// the database mocked. The server must re-derive the same category the
// wizard gated its questions on.
func TestWizardSubmitThroughIngestionService(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	store, err := storage.New(config.StorageConfig{Enabled: false})
	require.NoError(t, err)
	svc := services.NewSubmissionService(repository.NewSubmissionRepository(mock), store, nil)

	controller := NewController(NewMemoryDraftStore(),
		SubmitterFunc(func(ctx context.Context, input services.CreateSubmissionInput) error {
			_, err := svc.Create(ctx, input)
			return err
		}))

	session := "e2e"
	payload, err := EncodeImage("waakye.jpg", "image/jpeg", []byte("pixels"))
	require.NoError(t, err)

	require.NoError(t, controller.SaveDish(session, DishStep{
		DishName:        "Waakye",
		MainImages:      []ImagePayload{payload},
		NoPersonInImage: AnswerYes,
	}))
	require.NoError(t, controller.SaveDetails(session, DetailsStep{
		Stew:           "Shito",
		ExtraItems:     []string{"Gari", "Spaghetti"},
		ProteinContext: []string{"Boiled Egg"},
	}))
	require.NoError(t, controller.SaveLocation(session, LocationStep{
		Region:       "NORTHERN",
		Town:         "Tamale",
		FoodObtained: "Street vendor",
	}))
	require.NoError(t, controller.SaveContributor(session, ContributorStep{WantsAcknowledgement: AnswerNo}))
	require.NoError(t, controller.SaveConfirm(session, ConfirmStep{Accuracy: AnswerYes}))
	for i := firstStep; i < lastStep; i++ {
		_, err := controller.Continue(session)
		require.NoError(t, err)
	}

	// Waakye resolves to the rice/yam/plantain category on both sides.
	dish, ok := taxonomy.DishTypeForName("Waakye")
	require.True(t, ok)
	category, ok := taxonomy.CategoryForDish(dish)
	require.True(t, ok)
	require.Equal(t, taxonomy.CategoryRiceYamPlantain, category)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO submissions`).
		WithArgs(anyArgs(11)...).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(21, time.Now()))
	mock.ExpectQuery(`INSERT INTO submission_images`).
		WithArgs(anyArgs(6)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO rice_yam_plantain_meta`).
		WithArgs(anyArgs(7)...).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	require.NoError(t, controller.Submit(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}
