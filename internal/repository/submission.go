package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/taxonomy"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db Querier
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db Querier) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

const submissionColumns = `id, dish_name, no_person_in_image, region, town,
	food_obtained, food_obtained_other, wants_acknowledgement,
	acknowledged_name, acknowledged_email, acknowledged_phone,
	accuracy_confirmed, created_at`

// Create persists a submission together with its images and its single
// category metadata row in one transaction. The submission's ID and
// CreatedAt are filled in on success.
func (r *SubmissionRepository) Create(ctx context.Context, sub *models.Submission) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO submissions (
			dish_name, no_person_in_image, region, town,
			food_obtained, food_obtained_other, wants_acknowledgement,
			acknowledged_name, acknowledged_email, acknowledged_phone,
			accuracy_confirmed
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`,
		sub.DishName, sub.NoPersonInImage, sub.Region, sub.Town,
		sub.FoodObtained, sub.FoodObtainedOther, sub.WantsAcknowledgement,
		sub.AcknowledgedName, sub.AcknowledgedEmail, sub.AcknowledgedPhone,
		sub.AccuracyConfirmed,
	).Scan(&sub.ID, &sub.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	for i := range sub.Images {
		img := &sub.Images[i]
		img.SubmissionID = sub.ID
		err = tx.QueryRow(ctx, `
			INSERT INTO submission_images (submission_id, url, filename, type, size, mime_type)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, img.SubmissionID, img.URL, img.Filename, img.Type, img.Size, img.MimeType,
		).Scan(&img.ID)
		if err != nil {
			return fmt.Errorf("failed to create submission image: %w", err)
		}
	}

	if err := r.createMeta(ctx, tx, sub); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit submission: %w", err)
	}
	return nil
}

// createMeta inserts the single category metadata row attached to sub.
func (r *SubmissionRepository) createMeta(ctx context.Context, tx pgx.Tx, sub *models.Submission) error {
	switch {
	case sub.RiceYamPlantainMeta != nil:
		m := sub.RiceYamPlantainMeta
		m.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO rice_yam_plantain_meta (
				submission_id, stew, stew_other, extra_items, extra_items_other,
				protein_context, protein_context_other
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, m.SubmissionID, m.Stew, m.StewOther, m.ExtraItems, m.ExtraItemsOther,
			m.ProteinContext, m.ProteinContextOther,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to create rice_yam_plantain_meta: %w", err)
		}
	case sub.KokoMeta != nil:
		m := sub.KokoMeta
		m.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO koko_meta (submission_id, koko_items, koko_items_other)
			VALUES ($1, $2, $3)
			RETURNING id
		`, m.SubmissionID, m.KokoItems, m.KokoItemsOther).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to create koko_meta: %w", err)
		}
	case sub.BankuFufuMeta != nil:
		m := sub.BankuFufuMeta
		m.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO banku_fufu_meta (
				submission_id, soup_context, soup_context_other, pepper,
				pepper_other, protein_context, protein_context_other
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`, m.SubmissionID, m.SoupContext, m.SoupContextOther, m.Pepper,
			m.PepperOther, m.ProteinContext, m.ProteinContextOther,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to create banku_fufu_meta: %w", err)
		}
	case sub.BreadMeta != nil:
		m := sub.BreadMeta
		m.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO bread_meta (
				submission_id, bread_type, bread_type_other,
				bread_served_with, bread_served_with_other
			)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, m.SubmissionID, m.BreadType, m.BreadTypeOther,
			m.BreadServedWith, m.BreadServedWithOther,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to create bread_meta: %w", err)
		}
	case sub.Gob3Meta != nil:
		m := sub.Gob3Meta
		m.SubmissionID = sub.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO gob3_meta (
				submission_id, gob3_served_with, gob3_served_with_other,
				protein_context, protein_context_other
			)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, m.SubmissionID, m.Gob3ServedWith, m.Gob3ServedWithOther,
			m.ProteinContext, m.ProteinContextOther,
		).Scan(&m.ID)
		if err != nil {
			return fmt.Errorf("failed to create gob3_meta: %w", err)
		}
	default:
		return fmt.Errorf("submission has no category metadata")
	}
	return nil
}

// GetByID retrieves a submission with its images and metadata.
func (r *SubmissionRepository) GetByID(ctx context.Context, id int) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions WHERE id = $1`

	var sub models.Submission
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sub.ID, &sub.DishName, &sub.NoPersonInImage, &sub.Region, &sub.Town,
		&sub.FoodObtained, &sub.FoodObtainedOther, &sub.WantsAcknowledgement,
		&sub.AcknowledgedName, &sub.AcknowledgedEmail, &sub.AcknowledgedPhone,
		&sub.AccuracyConfirmed, &sub.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if err := r.loadRelations(ctx, []*models.Submission{&sub}); err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListFilter narrows the submission list.
type ListFilter struct {
	DishType *taxonomy.DishType
	Region   string
	Search   string
	Limit    int
	Offset   int
}

// List retrieves submissions newest-first with optional filters and returns
// the total count matching the filter.
func (r *SubmissionRepository) List(ctx context.Context, filter ListFilter) ([]*models.Submission, int, error) {
	conds := sq.And{}
	if filter.DishType != nil {
		conds = append(conds, sq.Eq{"dish_name": *filter.DishType})
	}
	if filter.Region != "" {
		conds = append(conds, sq.Eq{"region": filter.Region})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		conds = append(conds, sq.Or{
			sq.ILike{"town": pattern},
			sq.ILike{"region": pattern},
			sq.ILike{"food_obtained": pattern},
		})
	}

	countQuery := psql.Select("COUNT(*)").From("submissions")
	listQuery := psql.Select(submissionColumns).From("submissions").
		OrderBy("created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))
	if len(conds) > 0 {
		countQuery = countQuery.Where(conds)
		listQuery = listQuery.Where(conds)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}
	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count submissions: %w", err)
	}

	listSQL, listArgs, err := listQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}
	rows, err := r.db.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Submission
	for rows.Next() {
		var sub models.Submission
		err := rows.Scan(
			&sub.ID, &sub.DishName, &sub.NoPersonInImage, &sub.Region, &sub.Town,
			&sub.FoodObtained, &sub.FoodObtainedOther, &sub.WantsAcknowledgement,
			&sub.AcknowledgedName, &sub.AcknowledgedEmail, &sub.AcknowledgedPhone,
			&sub.AccuracyConfirmed, &sub.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, &sub)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating submissions: %w", err)
	}

	if err := r.loadRelations(ctx, subs); err != nil {
		return nil, 0, err
	}
	return subs, total, nil
}

// Delete removes a submission; images and metadata cascade. Returns the
// deleted record.
func (r *SubmissionRepository) Delete(ctx context.Context, id int) (*models.Submission, error) {
	sub, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := r.db.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete submission: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return sub, nil
}

// loadRelations attaches images and category metadata to the given
// submissions.
func (r *SubmissionRepository) loadRelations(ctx context.Context, subs []*models.Submission) error {
	if len(subs) == 0 {
		return nil
	}

	ids := make([]int, len(subs))
	byID := make(map[int]*models.Submission, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
		byID[sub.ID] = sub
		sub.Images = []models.SubmissionImage{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, submission_id, url, filename, type, size, mime_type
		FROM submission_images
		WHERE submission_id = ANY($1)
		ORDER BY id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load submission images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img models.SubmissionImage
		if err := rows.Scan(&img.ID, &img.SubmissionID, &img.URL, &img.Filename,
			&img.Type, &img.Size, &img.MimeType); err != nil {
			return fmt.Errorf("failed to scan submission image: %w", err)
		}
		if sub, ok := byID[img.SubmissionID]; ok {
			sub.Images = append(sub.Images, img)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating submission images: %w", err)
	}

	return r.loadMeta(ctx, ids, byID)
}

func (r *SubmissionRepository) loadMeta(ctx context.Context, ids []int, byID map[int]*models.Submission) error {
	if err := queryMeta(ctx, r.db, `
		SELECT id, submission_id, stew, stew_other, extra_items,
			extra_items_other, protein_context, protein_context_other
		FROM rice_yam_plantain_meta WHERE submission_id = ANY($1)
	`, ids, func(rows pgx.Rows) error {
		var m models.RiceYamPlantainMeta
		if err := rows.Scan(&m.ID, &m.SubmissionID, &m.Stew, &m.StewOther,
			&m.ExtraItems, &m.ExtraItemsOther, &m.ProteinContext,
			&m.ProteinContextOther); err != nil {
			return err
		}
		if sub, ok := byID[m.SubmissionID]; ok {
			sub.RiceYamPlantainMeta = &m
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load rice_yam_plantain_meta: %w", err)
	}

	if err := queryMeta(ctx, r.db, `
		SELECT id, submission_id, koko_items, koko_items_other
		FROM koko_meta WHERE submission_id = ANY($1)
	`, ids, func(rows pgx.Rows) error {
		var m models.KokoMeta
		if err := rows.Scan(&m.ID, &m.SubmissionID, &m.KokoItems, &m.KokoItemsOther); err != nil {
			return err
		}
		if sub, ok := byID[m.SubmissionID]; ok {
			sub.KokoMeta = &m
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load koko_meta: %w", err)
	}

	if err := queryMeta(ctx, r.db, `
		SELECT id, submission_id, soup_context, soup_context_other, pepper,
			pepper_other, protein_context, protein_context_other
		FROM banku_fufu_meta WHERE submission_id = ANY($1)
	`, ids, func(rows pgx.Rows) error {
		var m models.BankuFufuMeta
		if err := rows.Scan(&m.ID, &m.SubmissionID, &m.SoupContext,
			&m.SoupContextOther, &m.Pepper, &m.PepperOther,
			&m.ProteinContext, &m.ProteinContextOther); err != nil {
			return err
		}
		if sub, ok := byID[m.SubmissionID]; ok {
			sub.BankuFufuMeta = &m
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load banku_fufu_meta: %w", err)
	}

	if err := queryMeta(ctx, r.db, `
		SELECT id, submission_id, bread_type, bread_type_other,
			bread_served_with, bread_served_with_other
		FROM bread_meta WHERE submission_id = ANY($1)
	`, ids, func(rows pgx.Rows) error {
		var m models.BreadMeta
		if err := rows.Scan(&m.ID, &m.SubmissionID, &m.BreadType,
			&m.BreadTypeOther, &m.BreadServedWith, &m.BreadServedWithOther); err != nil {
			return err
		}
		if sub, ok := byID[m.SubmissionID]; ok {
			sub.BreadMeta = &m
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load bread_meta: %w", err)
	}

	if err := queryMeta(ctx, r.db, `
		SELECT id, submission_id, gob3_served_with, gob3_served_with_other,
			protein_context, protein_context_other
		FROM gob3_meta WHERE submission_id = ANY($1)
	`, ids, func(rows pgx.Rows) error {
		var m models.Gob3Meta
		if err := rows.Scan(&m.ID, &m.SubmissionID, &m.Gob3ServedWith,
			&m.Gob3ServedWithOther, &m.ProteinContext, &m.ProteinContextOther); err != nil {
			return err
		}
		if sub, ok := byID[m.SubmissionID]; ok {
			sub.Gob3Meta = &m
		}
		return nil
	}); err != nil {
		return fmt.Errorf("failed to load gob3_meta: %w", err)
	}

	return nil
}

func queryMeta(ctx context.Context, db Querier, query string, ids []int, scan func(pgx.Rows) error) error {
	rows, err := db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
