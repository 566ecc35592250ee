package wizard

import (
	"context"
	"fmt"

	"food-dataset-backend/internal/services"
	"food-dataset-backend/internal/taxonomy"
)

// Submitter accepts the assembled payload of a finished draft. The
// ingestion service satisfies it.
type Submitter interface {
	Submit(ctx context.Context, input services.CreateSubmissionInput) error
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, input services.CreateSubmissionInput) error

func (f SubmitterFunc) Submit(ctx context.Context, input services.CreateSubmissionInput) error {
	return f(ctx, input)
}

// ValidationError reports the first unmet requirement of a step. Navigation
// past the step stays blocked until it is resolved.
type ValidationError struct {
	Step    int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

// Controller drives one session's wizard: loading and saving the draft,
// gating forward navigation on per-step validation, and handing the
// finished draft to the submitter.
type Controller struct {
	store     DraftStore
	submitter Submitter
}

// NewController creates a wizard controller.
func NewController(store DraftStore, submitter Submitter) *Controller {
	return &Controller{store: store, submitter: submitter}
}

// Draft returns the session's draft, creating a fresh one when none exists.
// Persisted positions outside the valid range collapse back to step 1.
func (c *Controller) Draft(sessionID string) (*Draft, error) {
	draft, err := c.store.Load(sessionID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = NewDraft()
		if err := c.store.Save(sessionID, draft); err != nil {
			return nil, err
		}
		return draft, nil
	}
	draft.normalize()
	return draft, nil
}

// SaveDish records the dish step. Image lists over the per-list cap are
// rejected before the draft is touched.
func (c *Controller) SaveDish(sessionID string, step DishStep) error {
	if len(step.MainImages) > maxImagesPerList {
		return &ValidationError{Step: StepDish, Field: "mainImages", Message: fmt.Sprintf("at most %d main images are allowed", maxImagesPerList)}
	}
	if len(step.AdditionalImages) > maxImagesPerList {
		return &ValidationError{Step: StepDish, Field: "additionalImages", Message: fmt.Sprintf("at most %d additional images are allowed", maxImagesPerList)}
	}
	return c.update(sessionID, func(d *Draft) { d.Dish = step })
}

// SaveDetails records the dish-specific metadata step.
func (c *Controller) SaveDetails(sessionID string, step DetailsStep) error {
	return c.update(sessionID, func(d *Draft) { d.Details = step })
}

// SaveLocation records the location step.
func (c *Controller) SaveLocation(sessionID string, step LocationStep) error {
	return c.update(sessionID, func(d *Draft) { d.Location = step })
}

// SaveContributor records the acknowledgement step.
func (c *Controller) SaveContributor(sessionID string, step ContributorStep) error {
	return c.update(sessionID, func(d *Draft) { d.Contributor = step })
}

// SaveConfirm records the final confirmation step.
func (c *Controller) SaveConfirm(sessionID string, step ConfirmStep) error {
	return c.update(sessionID, func(d *Draft) { d.Confirm = step })
}

// Continue validates the current step and advances to the next one. The
// last step does not advance; it is finished through Submit.
func (c *Controller) Continue(sessionID string) (*Draft, error) {
	draft, err := c.Draft(sessionID)
	if err != nil {
		return nil, err
	}
	if err := validateStep(draft, draft.CurrentStep); err != nil {
		return nil, err
	}
	if draft.CurrentStep >= lastStep {
		return nil, &ValidationError{Step: lastStep, Field: "", Message: "final step is completed by submitting"}
	}

	draft.CurrentStep++
	if draft.CurrentStep > draft.FurthestStep {
		draft.FurthestStep = draft.CurrentStep
	}
	if err := c.store.Save(sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Previous moves one step back without validating anything. The first step
// stays put.
func (c *Controller) Previous(sessionID string) (*Draft, error) {
	draft, err := c.Draft(sessionID)
	if err != nil {
		return nil, err
	}
	if draft.CurrentStep > firstStep {
		draft.CurrentStep--
		if err := c.store.Save(sessionID, draft); err != nil {
			return nil, err
		}
	}
	return draft, nil
}

// JumpTo moves directly to a previously reached step. Steps beyond the
// furthest reached one are not reachable by jumping.
func (c *Controller) JumpTo(sessionID string, step int) (*Draft, error) {
	draft, err := c.Draft(sessionID)
	if err != nil {
		return nil, err
	}
	if step < firstStep || step > draft.FurthestStep {
		return nil, &ValidationError{Step: step, Field: "", Message: fmt.Sprintf("step %d has not been reached", step)}
	}

	draft.CurrentStep = step
	if err := c.store.Save(sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Submit validates every collecting step, assembles the payload, hands it
// to the submitter, and clears the draft. The draft survives a failed
// submission untouched so the user can retry.
func (c *Controller) Submit(ctx context.Context, sessionID string) error {
	draft, err := c.Draft(sessionID)
	if err != nil {
		return err
	}
	for step := firstStep; step <= lastStep; step++ {
		if err := validateStep(draft, step); err != nil {
			return err
		}
	}

	if err := c.submitter.Submit(ctx, Assemble(draft)); err != nil {
		return err
	}
	return c.store.Clear(sessionID)
}

func (c *Controller) update(sessionID string, apply func(*Draft)) error {
	draft, err := c.Draft(sessionID)
	if err != nil {
		return err
	}
	apply(draft)
	return c.store.Save(sessionID, draft)
}

// validateStep enforces the required fields of one step. Only the question
// set of the dish's resolved category applies on the details step.
func validateStep(d *Draft, step int) error {
	fail := func(field, message string) error {
		return &ValidationError{Step: step, Field: field, Message: message}
	}

	switch step {
	case StepConsent:
		return nil

	case StepDish:
		if d.Dish.DishName == "" {
			return fail("dishName", "please select a dish")
		}
		if _, ok := taxonomy.DishTypeForName(d.Dish.DishName); !ok {
			return fail("dishName", fmt.Sprintf("unknown dish: %s", d.Dish.DishName))
		}
		if len(d.Dish.MainImages) == 0 {
			return fail("mainImages", "at least one main image is required")
		}
		if d.Dish.NoPersonInImage != AnswerYes && d.Dish.NoPersonInImage != AnswerNo {
			return fail("noPersonInImage", "please confirm whether a person appears in the images")
		}
		return nil

	case StepDetails:
		dish, ok := taxonomy.DishTypeForName(d.Dish.DishName)
		if !ok {
			return fail("dishName", "please select a dish first")
		}
		category, _ := taxonomy.CategoryForDish(dish)
		switch category {
		case taxonomy.CategoryRiceYamPlantain:
			if d.Details.Stew == "" {
				return fail("stew", "please select a stew or sauce")
			}
		case taxonomy.CategoryKoko:
			if len(d.Details.KokoItems) == 0 {
				return fail("kokoItems", "please select what the koko is served with")
			}
		case taxonomy.CategoryBankuFufu:
			if d.Details.SoupContext == "" {
				return fail("soupContext", "please select a soup")
			}
			if taxonomy.PepperApplies(dish) && len(d.Details.Pepper) == 0 {
				return fail("pepper", "please select a pepper option")
			}
		case taxonomy.CategoryBread:
			if d.Details.BreadType == "" {
				return fail("breadType", "please select a bread type")
			}
			if len(d.Details.BreadServedWith) == 0 {
				return fail("breadServedWith", "please select what the bread is served with")
			}
		case taxonomy.CategoryGob3:
			if len(d.Details.Gob3ServedWith) == 0 {
				return fail("gob3ServedWith", "please select what the beans are served with")
			}
		}
		return nil

	case StepLocation:
		if !taxonomy.ValidRegion(d.Location.Region) {
			return fail("region", "please select a region")
		}
		if d.Location.FoodObtained == "" {
			return fail("foodObtained", "please tell us where the food was obtained")
		}
		return nil

	case StepContributor:
		if d.Contributor.WantsAcknowledgement != AnswerYes && d.Contributor.WantsAcknowledgement != AnswerNo {
			return fail("wantsAcknowledgement", "please choose whether you want to be acknowledged")
		}
		return nil

	case StepConfirm:
		switch d.Confirm.Accuracy {
		case AnswerYes, AnswerNo, AnswerDontKnow:
			return nil
		}
		return fail("accuracy", "please confirm the accuracy of the information")
	}
	return nil
}
