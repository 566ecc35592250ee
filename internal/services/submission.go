package services

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"food-dataset-backend/internal/models"
	"food-dataset-backend/internal/repository"
	"food-dataset-backend/internal/storage"
	"food-dataset-backend/internal/taxonomy"
)

// MaxImagesPerList caps each of the main/additional image lists.
const MaxImagesPerList = 5

// ImageInput is one image in a create request: either an already-remote URL
// or an embedded data URL.
type ImageInput struct {
	URL      string  `json:"url"`
	Filename string  `json:"filename"`
	Size     *int64  `json:"size,omitempty"`
	MimeType *string `json:"mimeType,omitempty"`
}

// CreateSubmissionInput is the assembled wizard payload accepted by the
// ingestion endpoint. Category fields outside the resolved category are
// ignored server-side.
type CreateSubmissionInput struct {
	// Basic dish information
	DishName         string       `json:"dishName"`
	NoPersonInImage  bool         `json:"noPersonInImage"`
	MainImages       []ImageInput `json:"mainImages,omitempty"`
	AdditionalImages []ImageInput `json:"additionalImages,omitempty"`

	// Dish-specific metadata, conditional on the dish category
	Stew                 *string  `json:"stew,omitempty"`
	StewOther            *string  `json:"stewOther,omitempty"`
	ExtraItems           []string `json:"extraItems,omitempty"`
	ExtraItemsOther      *string  `json:"extraItemsOther,omitempty"`
	KokoItems            []string `json:"kokoItems,omitempty"`
	KokoItemsOther       *string  `json:"kokoItemsOther,omitempty"`
	SoupContext          *string  `json:"soupContext,omitempty"`
	SoupContextOther     *string  `json:"soupContextOther,omitempty"`
	Pepper               []string `json:"pepper,omitempty"`
	PepperOther          *string  `json:"pepperOther,omitempty"`
	BreadType            *string  `json:"breadType,omitempty"`
	BreadTypeOther       *string  `json:"breadTypeOther,omitempty"`
	BreadServedWith      []string `json:"breadServedWith,omitempty"`
	BreadServedWithOther *string  `json:"breadServedWithOther,omitempty"`
	Gob3ServedWith       []string `json:"gob3ServedWith,omitempty"`
	Gob3ServedWithOther  *string  `json:"gob3ServedWithOther,omitempty"`
	ProteinContext       []string `json:"proteinContext,omitempty"`
	ProteinContextOther  *string  `json:"proteinContextOther,omitempty"`

	// Location
	Region            string  `json:"region"`
	Town              *string `json:"town,omitempty"`
	FoodObtained      string  `json:"foodObtained"`
	FoodObtainedOther *string `json:"foodObtainedOther,omitempty"`

	// Contributor acknowledgement
	WantsAcknowledgement bool    `json:"wantsAcknowledgement,omitempty"`
	AcknowledgedName     *string `json:"acknowledgedName,omitempty"`
	AcknowledgedEmail    *string `json:"acknowledgedEmail,omitempty"`
	AcknowledgedPhone    *string `json:"acknowledgedPhone,omitempty"`

	// Final confirmation
	AccuracyConfirmed bool `json:"accuracyConfirmed"`
}

// ListSubmissionsInput narrows the list endpoint.
type ListSubmissionsInput struct {
	DishName string
	Region   string
	Search   string
	Limit    int
	Offset   int
}

// SubmissionService handles the ingestion, listing and deletion of
// submissions.
type SubmissionService struct {
	repo  *repository.SubmissionRepository
	store *storage.Adapter
	hub   *WSHub
}

// NewSubmissionService creates a new submission service. hub may be nil.
func NewSubmissionService(repo *repository.SubmissionRepository, store *storage.Adapter, hub *WSHub) *SubmissionService {
	return &SubmissionService{
		repo:  repo,
		store: store,
		hub:   hub,
	}
}

// Create validates the payload, resolves the dish category, materializes all
// images and performs the single transactional write.
func (s *SubmissionService) Create(ctx context.Context, input CreateSubmissionInput) (*models.Submission, error) {
	if input.DishName == "" || input.Region == "" || input.FoodObtained == "" {
		return nil, Invalid("Missing required fields: dishName, region, foodObtained")
	}

	dishType, ok := taxonomy.DishTypeForName(input.DishName)
	if !ok {
		return nil, Invalid("Invalid dish name: %s", input.DishName)
	}
	category, ok := taxonomy.CategoryForDish(dishType)
	if !ok {
		// Unreachable while the taxonomy stays total; guarded anyway.
		return nil, Internal("No category for dish type", nil)
	}

	if len(input.MainImages) > MaxImagesPerList || len(input.AdditionalImages) > MaxImagesPerList {
		return nil, Invalid("At most %d images are allowed per list", MaxImagesPerList)
	}

	images, err := s.materializeImages(ctx, input)
	if err != nil {
		return nil, err
	}

	sub := &models.Submission{
		DishName:          dishType,
		NoPersonInImage:   input.NoPersonInImage,
		Region:            input.Region,
		Town:              emptyToNil(input.Town),
		FoodObtained:      input.FoodObtained,
		FoodObtainedOther: emptyToNil(input.FoodObtainedOther),
		AccuracyConfirmed: input.AccuracyConfirmed,
		Images:            images,
	}

	sub.WantsAcknowledgement = input.WantsAcknowledgement
	if input.WantsAcknowledgement {
		sub.AcknowledgedName = emptyToNil(input.AcknowledgedName)
		sub.AcknowledgedEmail = emptyToNil(input.AcknowledgedEmail)
		sub.AcknowledgedPhone = emptyToNil(input.AcknowledgedPhone)
	}

	attachMeta(sub, category, input)

	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, Internal("Failed to create submission", err)
	}

	if s.hub != nil {
		s.hub.NotifySubmissionCreated(sub)
	}
	return sub, nil
}

// materializeImages resolves every image URL through the storage adapter,
// concurrently across both lists. Any failure aborts the whole create.
func (s *SubmissionService) materializeImages(ctx context.Context, input CreateSubmissionInput) ([]models.SubmissionImage, error) {
	type tagged struct {
		ImageInput
		typ models.ImageType
	}

	var all []tagged
	for _, img := range input.MainImages {
		all = append(all, tagged{img, models.ImageMain})
	}
	for _, img := range input.AdditionalImages {
		all = append(all, tagged{img, models.ImageAdditional})
	}

	images := make([]models.SubmissionImage, len(all))
	g, gctx := errgroup.WithContext(ctx)
	for i, img := range all {
		i, img := i, img
		g.Go(func() error {
			mime := ""
			if img.MimeType != nil {
				mime = *img.MimeType
			}
			url, err := s.store.EnsureRemote(gctx, img.URL, img.Filename, mime, input.DishName)
			if err != nil {
				return err
			}
			images[i] = models.SubmissionImage{
				URL:      url,
				Filename: img.Filename,
				Type:     img.typ,
				Size:     img.Size,
				MimeType: img.MimeType,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) || errors.Is(err, storage.ErrFileTooLarge) {
			return nil, &AppError{Kind: KindInvalid, Message: err.Error()}
		}
		return nil, Internal("Failed to upload image", err)
	}
	return images, nil
}

// attachMeta populates exactly the resolved category's metadata from the
// payload. Fields belonging to other categories are dropped.
func attachMeta(sub *models.Submission, category taxonomy.Category, input CreateSubmissionInput) {
	switch category {
	case taxonomy.CategoryRiceYamPlantain:
		sub.RiceYamPlantainMeta = &models.RiceYamPlantainMeta{
			Stew:                emptyToNil(input.Stew),
			StewOther:           emptyToNil(input.StewOther),
			ExtraItems:          orEmpty(input.ExtraItems),
			ExtraItemsOther:     emptyToNil(input.ExtraItemsOther),
			ProteinContext:      orEmpty(input.ProteinContext),
			ProteinContextOther: emptyToNil(input.ProteinContextOther),
		}
	case taxonomy.CategoryKoko:
		sub.KokoMeta = &models.KokoMeta{
			KokoItems:      orEmpty(input.KokoItems),
			KokoItemsOther: emptyToNil(input.KokoItemsOther),
		}
	case taxonomy.CategoryBankuFufu:
		sub.BankuFufuMeta = &models.BankuFufuMeta{
			SoupContext:         emptyToNil(input.SoupContext),
			SoupContextOther:    emptyToNil(input.SoupContextOther),
			Pepper:              orEmpty(input.Pepper),
			PepperOther:         emptyToNil(input.PepperOther),
			ProteinContext:      orEmpty(input.ProteinContext),
			ProteinContextOther: emptyToNil(input.ProteinContextOther),
		}
	case taxonomy.CategoryBread:
		sub.BreadMeta = &models.BreadMeta{
			BreadType:            emptyToNil(input.BreadType),
			BreadTypeOther:       emptyToNil(input.BreadTypeOther),
			BreadServedWith:      orEmpty(input.BreadServedWith),
			BreadServedWithOther: emptyToNil(input.BreadServedWithOther),
		}
	case taxonomy.CategoryGob3:
		sub.Gob3Meta = &models.Gob3Meta{
			Gob3ServedWith:      orEmpty(input.Gob3ServedWith),
			Gob3ServedWithOther: emptyToNil(input.Gob3ServedWithOther),
			ProteinContext:      orEmpty(input.ProteinContext),
			ProteinContextOther: emptyToNil(input.ProteinContextOther),
		}
	}
}

// SubmissionPage is the result of a list query.
type SubmissionPage struct {
	Data   []*models.Submission
	Total  int
	Limit  int
	Offset int
}

// List retrieves submissions newest-first with optional filters.
func (s *SubmissionService) List(ctx context.Context, input ListSubmissionsInput) (*SubmissionPage, error) {
	filter := repository.ListFilter{
		Region: input.Region,
		Search: input.Search,
		Limit:  input.Limit,
		Offset: input.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if input.DishName != "" {
		// Unknown dish names are ignored rather than rejected; the list
		// stays unfiltered on dish in that case.
		if dt, ok := taxonomy.DishTypeForName(input.DishName); ok {
			filter.DishType = &dt
		}
	}

	data, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, Internal("Failed to fetch submissions", err)
	}
	if data == nil {
		data = []*models.Submission{}
	}
	return &SubmissionPage{
		Data:   data,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// Get retrieves one submission with images and metadata.
func (s *SubmissionService) Get(ctx context.Context, id int) (*models.Submission, error) {
	if id <= 0 {
		return nil, Invalid("Invalid submission id")
	}
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Submission not found")
		}
		return nil, Internal("Failed to fetch submission", err)
	}
	return sub, nil
}

// Delete removes a submission and, via cascade, its images and metadata.
func (s *SubmissionService) Delete(ctx context.Context, id int) (*models.Submission, error) {
	if id <= 0 {
		return nil, Invalid("Invalid submission id")
	}
	sub, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Submission not found")
		}
		return nil, Internal("Failed to delete submission", err)
	}

	if s.hub != nil {
		s.hub.NotifySubmissionDeleted(id)
	}
	return sub, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func orEmpty(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
