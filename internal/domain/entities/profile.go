package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"comphub.backend/pkg/utils"
)

// ProfileVisibility controls who can see a profile
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityPrivate ProfileVisibility = "private"
)

// ValidProfileVisibility reports whether v is a known visibility setting
func ValidProfileVisibility(v ProfileVisibility) bool {
	return v == VisibilityPublic || v == VisibilityPrivate
}

// Profile represents general profile data attached to every user
type Profile struct {
	ID                      uuid.UUID         `json:"id"`
	UserID                  uuid.UUID         `json:"userId"`
	ProfileImage            null.String       `json:"profileImage,omitempty"`
	Bio                     string            `json:"bio"`
	DateOfBirth             null.Time         `json:"dateOfBirth,omitempty"`
	County                  string            `json:"county"`
	SubCounty               string            `json:"subCounty"`
	Ward                    string            `json:"ward"`
	PostalAddress           string            `json:"postalAddress"`
	PostalCode              string            `json:"postalCode"`
	PreferredLanguage       string            `json:"preferredLanguage"`
	PreferredCurrency       string            `json:"preferredCurrency"`
	NotificationPreferences map[string]any    `json:"notificationPreferences"`
	ProfileVisibility       ProfileVisibility `json:"profileVisibility"`
	ShowPhone               bool              `json:"showPhone"`
	ShowEmail               bool              `json:"showEmail"`
	CreatedAt               time.Time         `json:"createdAt"`
	UpdatedAt               time.Time         `json:"updatedAt"`
}

// NewDefaultProfile returns the profile provisioned at registration time
func NewDefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		ID:                      utils.GenerateUUIDv7(),
		UserID:                  userID,
		County:                  "Nairobi",
		PreferredLanguage:       "en",
		PreferredCurrency:       "KES",
		NotificationPreferences: map[string]any{},
		ProfileVisibility:       VisibilityPublic,
	}
}

// UpdateProfileInput represents input for updating profile fields
type UpdateProfileInput struct {
	Bio                     *string           `json:"bio,omitempty" binding:"omitempty,max=500"`
	DateOfBirth             *time.Time        `json:"dateOfBirth,omitempty"`
	County                  *string           `json:"county,omitempty" binding:"omitempty,max=50"`
	SubCounty               *string           `json:"subCounty,omitempty" binding:"omitempty,max=50"`
	Ward                    *string           `json:"ward,omitempty" binding:"omitempty,max=50"`
	PostalAddress           *string           `json:"postalAddress,omitempty" binding:"omitempty,max=100"`
	PostalCode              *string           `json:"postalCode,omitempty" binding:"omitempty,max=10"`
	PreferredLanguage       *string           `json:"preferredLanguage,omitempty" binding:"omitempty,max=10"`
	PreferredCurrency       *string           `json:"preferredCurrency,omitempty" binding:"omitempty,len=3"`
	NotificationPreferences map[string]any    `json:"notificationPreferences,omitempty"`
	ProfileVisibility       ProfileVisibility `json:"profileVisibility,omitempty"`
	ShowPhone               *bool             `json:"showPhone,omitempty"`
	ShowEmail               *bool             `json:"showEmail,omitempty"`
}
