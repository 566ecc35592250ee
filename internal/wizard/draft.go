// Package wizard implements the six-step submission wizard: a typed draft
// accumulated step by step, per-step required-field gating, and the final
// assembly into the ingestion payload. Drafts live in a session-scoped
// store and survive reloads; nothing reaches the server before the final
// submit.
package wizard

import "sync"

// Wizard steps. Steps 1-6 collect input; the completed state is terminal
// and display-only.
const (
	StepConsent     = 1
	StepDish        = 2
	StepDetails     = 3
	StepLocation    = 4
	StepContributor = 5
	StepConfirm     = 6

	firstStep = StepConsent
	lastStep  = StepConfirm
)

// Answer is an explicit selection on a yes/no (or yes/no/dontknow)
// question. The zero value means the question has not been answered.
type Answer string

const (
	AnswerYes      Answer = "yes"
	AnswerNo       Answer = "no"
	AnswerDontKnow Answer = "dontknow"
)

// ImagePayload is one locally captured image: either an embedded data URL
// produced by EncodeImage or an already-remote URL.
type ImagePayload struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// DishStep holds the image-and-dish-selection step. The dish name decides
// which question set the details step presents.
type DishStep struct {
	DishName         string         `json:"dishName"`
	MainImages       []ImagePayload `json:"mainImages"`
	AdditionalImages []ImagePayload `json:"additionalImages"`
	NoPersonInImage  Answer         `json:"noPersonInImage"`
}

// DetailsStep holds the dish-specific metadata step. Only the fields of the
// resolved category are presented and validated; the rest stay zero.
type DetailsStep struct {
	Stew                 string   `json:"stew"`
	StewOther            string   `json:"stewOther"`
	ExtraItems           []string `json:"extraItems"`
	ExtraItemsOther      string   `json:"extraItemsOther"`
	KokoItems            []string `json:"kokoItems"`
	KokoItemsOther       string   `json:"kokoItemsOther"`
	SoupContext          string   `json:"soupContext"`
	SoupContextOther     string   `json:"soupContextOther"`
	Pepper               []string `json:"pepper"`
	PepperOther          string   `json:"pepperOther"`
	BreadType            string   `json:"breadType"`
	BreadTypeOther       string   `json:"breadTypeOther"`
	BreadServedWith      []string `json:"breadServedWith"`
	BreadServedWithOther string   `json:"breadServedWithOther"`
	Gob3ServedWith       []string `json:"gob3ServedWith"`
	Gob3ServedWithOther  string   `json:"gob3ServedWithOther"`
	ProteinContext       []string `json:"proteinContext"`
	ProteinContextOther  string   `json:"proteinContextOther"`
}

// LocationStep holds the location step.
type LocationStep struct {
	Region            string `json:"region"`
	Town              string `json:"town"`
	FoodObtained      string `json:"foodObtained"`
	FoodObtainedOther string `json:"foodObtainedOther"`
}

// ContributorStep holds the optional acknowledgement step.
type ContributorStep struct {
	WantsAcknowledgement Answer `json:"wantsAcknowledgement"`
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Phone                string `json:"phone"`
}

// ConfirmStep holds the final confirmation step.
type ConfirmStep struct {
	Accuracy Answer `json:"accuracy"`
}

// Draft is the complete client-held wizard state: one field per step plus
// the navigation position. Fields for steps not yet visited keep their zero
// values.
type Draft struct {
	CurrentStep  int `json:"currentStep"`
	FurthestStep int `json:"furthestStep"`

	Dish        DishStep        `json:"dish"`
	Details     DetailsStep     `json:"details"`
	Location    LocationStep    `json:"location"`
	Contributor ContributorStep `json:"contributor"`
	Confirm     ConfirmStep     `json:"confirm"`
}

// NewDraft returns a draft positioned on the first step.
func NewDraft() *Draft {
	return &Draft{CurrentStep: firstStep, FurthestStep: firstStep}
}

// normalize collapses out-of-range positions back to the first step. A
// corrupted persisted step is a reset, not an error.
func (d *Draft) normalize() {
	if d.CurrentStep < firstStep || d.CurrentStep > lastStep {
		d.CurrentStep = firstStep
	}
	if d.FurthestStep < d.CurrentStep {
		d.FurthestStep = d.CurrentStep
	}
	if d.FurthestStep > lastStep {
		d.FurthestStep = lastStep
	}
}

// DraftStore persists drafts per browser session.
type DraftStore interface {
	// Load returns the draft for the session, or nil if none exists.
	Load(sessionID string) (*Draft, error)
	Save(sessionID string, draft *Draft) error
	Clear(sessionID string) error
}

// MemoryDraftStore is an in-memory session-scoped draft store. Whole drafts
// are swapped atomically under the lock; concurrent writers to the same
// session are last-write-wins.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]*Draft
}

// NewMemoryDraftStore creates a new in-memory draft store
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]*Draft)}
}

// Load returns a copy of the session's draft, or nil if none exists.
func (s *MemoryDraftStore) Load(sessionID string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	copied := *draft
	return &copied, nil
}

// Save stores the session's draft.
func (s *MemoryDraftStore) Save(sessionID string, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *draft
	s.drafts[sessionID] = &copied
	return nil
}

// Clear removes the session's draft.
func (s *MemoryDraftStore) Clear(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, sessionID)
	return nil
}
