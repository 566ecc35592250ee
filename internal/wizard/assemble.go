package wizard

import (
	"food-dataset-backend/internal/services"
	"food-dataset-backend/internal/taxonomy"
)

// Assemble flattens a draft into the ingestion payload. Only the resolved
// category's metadata fields are carried over; contributor details are
// carried only when acknowledgement was requested. Missing step data maps
// to the field's zero value rather than failing.
func Assemble(d *Draft) services.CreateSubmissionInput {
	input := services.CreateSubmissionInput{
		DishName:          d.Dish.DishName,
		NoPersonInImage:   d.Dish.NoPersonInImage == AnswerYes,
		MainImages:        toImageInputs(d.Dish.MainImages),
		AdditionalImages:  toImageInputs(d.Dish.AdditionalImages),
		Region:            d.Location.Region,
		Town:              optional(d.Location.Town),
		FoodObtained:      d.Location.FoodObtained,
		FoodObtainedOther: optional(d.Location.FoodObtainedOther),
		AccuracyConfirmed: d.Confirm.Accuracy == AnswerYes,
	}

	if dish, ok := taxonomy.DishTypeForName(d.Dish.DishName); ok {
		if category, ok := taxonomy.CategoryForDish(dish); ok {
			attachCategoryFields(&input, category, &d.Details)
			if taxonomy.ProteinApplies(category) {
				input.ProteinContext = d.Details.ProteinContext
				input.ProteinContextOther = optional(d.Details.ProteinContextOther)
			}
		}
	}

	if d.Contributor.WantsAcknowledgement == AnswerYes {
		input.WantsAcknowledgement = true
		input.AcknowledgedName = optional(d.Contributor.Name)
		input.AcknowledgedEmail = optional(d.Contributor.Email)
		input.AcknowledgedPhone = optional(d.Contributor.Phone)
	}

	return input
}

func attachCategoryFields(input *services.CreateSubmissionInput, category taxonomy.Category, details *DetailsStep) {
	switch category {
	case taxonomy.CategoryRiceYamPlantain:
		input.Stew = optional(details.Stew)
		input.StewOther = optional(details.StewOther)
		input.ExtraItems = details.ExtraItems
		input.ExtraItemsOther = optional(details.ExtraItemsOther)
	case taxonomy.CategoryKoko:
		input.KokoItems = details.KokoItems
		input.KokoItemsOther = optional(details.KokoItemsOther)
	case taxonomy.CategoryBankuFufu:
		input.SoupContext = optional(details.SoupContext)
		input.SoupContextOther = optional(details.SoupContextOther)
		input.Pepper = details.Pepper
		input.PepperOther = optional(details.PepperOther)
	case taxonomy.CategoryBread:
		input.BreadType = optional(details.BreadType)
		input.BreadTypeOther = optional(details.BreadTypeOther)
		input.BreadServedWith = details.BreadServedWith
		input.BreadServedWithOther = optional(details.BreadServedWithOther)
	case taxonomy.CategoryGob3:
		input.Gob3ServedWith = details.Gob3ServedWith
		input.Gob3ServedWithOther = optional(details.Gob3ServedWithOther)
	}
}

func toImageInputs(payloads []ImagePayload) []services.ImageInput {
	if len(payloads) == 0 {
		return nil
	}
	inputs := make([]services.ImageInput, 0, len(payloads))
	for _, p := range payloads {
		input := services.ImageInput{URL: p.URL, Filename: p.Filename}
		if p.Size > 0 {
			size := p.Size
			input.Size = &size
		}
		if p.MimeType != "" {
			mime := p.MimeType
			input.MimeType = &mime
		}
		inputs = append(inputs, input)
	}
	return inputs
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
