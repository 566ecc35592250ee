package models

import (
	"time"

	"food-dataset-backend/internal/taxonomy"
)

// ImageType tags an image within a submission.
type ImageType string

const (
	ImageMain       ImageType = "main"
	ImageAdditional ImageType = "additional"
)

// UserType is the role of an admin-portal account.
type UserType string

const (
	UserTypeAdmin UserType = "ADMIN"
	UserTypeUser  UserType = "USER"
)

// Submission represents one contributed dish observation.
type Submission struct {
	ID                int               `json:"id"`
	DishName          taxonomy.DishType `json:"dishName"`
	NoPersonInImage   bool              `json:"noPersonInImage"`
	Region            string            `json:"region"`
	Town              *string           `json:"town"`
	FoodObtained      string            `json:"foodObtained"`
	FoodObtainedOther *string           `json:"foodObtainedOther"`

	WantsAcknowledgement bool    `json:"wantsAcknowledgement"`
	AcknowledgedName     *string `json:"acknowledgedName"`
	AcknowledgedEmail    *string `json:"acknowledgedEmail"`
	AcknowledgedPhone    *string `json:"acknowledgedPhone"`

	AccuracyConfirmed bool      `json:"accuracyConfirmed"`
	CreatedAt         time.Time `json:"createdAt"`

	Images []SubmissionImage `json:"images"`

	// Exactly one of these is set, determined by the dish category.
	RiceYamPlantainMeta *RiceYamPlantainMeta `json:"riceYamPlantainMeta,omitempty"`
	KokoMeta            *KokoMeta            `json:"kokoMeta,omitempty"`
	BankuFufuMeta       *BankuFufuMeta       `json:"bankuFufuMeta,omitempty"`
	BreadMeta           *BreadMeta           `json:"breadMeta,omitempty"`
	Gob3Meta            *Gob3Meta            `json:"gob3Meta,omitempty"`
}

// SubmissionImage is one image belonging to a submission.
type SubmissionImage struct {
	ID           int       `json:"id"`
	SubmissionID int       `json:"submissionId"`
	URL          string    `json:"url"`
	Filename     string    `json:"filename"`
	Type         ImageType `json:"type"`
	Size         *int64    `json:"size"`
	MimeType     *string   `json:"mimeType"`
}

// RiceYamPlantainMeta holds metadata for rice, yam and plantain dishes.
type RiceYamPlantainMeta struct {
	ID                  int      `json:"id"`
	SubmissionID        int      `json:"submissionId"`
	Stew                *string  `json:"stew"`
	StewOther           *string  `json:"stewOther"`
	ExtraItems          []string `json:"extraItems"`
	ExtraItemsOther     *string  `json:"extraItemsOther"`
	ProteinContext      []string `json:"proteinContext"`
	ProteinContextOther *string  `json:"proteinContextOther"`
}

// KokoMeta holds metadata for koko submissions.
type KokoMeta struct {
	ID             int      `json:"id"`
	SubmissionID   int      `json:"submissionId"`
	KokoItems      []string `json:"kokoItems"`
	KokoItemsOther *string  `json:"kokoItemsOther"`
}

// BankuFufuMeta holds metadata for banku, fufu, kokonte and kenkey.
type BankuFufuMeta struct {
	ID                  int      `json:"id"`
	SubmissionID        int      `json:"submissionId"`
	SoupContext         *string  `json:"soupContext"`
	SoupContextOther    *string  `json:"soupContextOther"`
	Pepper              []string `json:"pepper"`
	PepperOther         *string  `json:"pepperOther"`
	ProteinContext      []string `json:"proteinContext"`
	ProteinContextOther *string  `json:"proteinContextOther"`
}

// BreadMeta holds metadata for bread submissions.
type BreadMeta struct {
	ID                   int      `json:"id"`
	SubmissionID         int      `json:"submissionId"`
	BreadType            *string  `json:"breadType"`
	BreadTypeOther       *string  `json:"breadTypeOther"`
	BreadServedWith      []string `json:"breadServedWith"`
	BreadServedWithOther *string  `json:"breadServedWithOther"`
}

// Gob3Meta holds metadata for beans (gob3) submissions.
type Gob3Meta struct {
	ID                  int      `json:"id"`
	SubmissionID        int      `json:"submissionId"`
	Gob3ServedWith      []string `json:"gob3ServedWith"`
	Gob3ServedWithOther *string  `json:"gob3ServedWithOther"`
	ProteinContext      []string `json:"proteinContext"`
	ProteinContextOther *string  `json:"proteinContextOther"`
}

// User represents an admin-portal account. The password hash is never
// serialized.
type User struct {
	ID           int       `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	UserType     UserType  `json:"userType"`
	Phone        *string   `json:"phone"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PasswordResetToken is a single-use token for the password reset flow.
type PasswordResetToken struct {
	ID        int       `json:"id"`
	Token     string    `json:"token"`
	UserID    int       `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
