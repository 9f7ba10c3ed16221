package repositories

import (
	"context"
	"errors"
	"time"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// ProfileRepository implements profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a new profile
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	m := toProfileModel(profile)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByUserID gets the profile attached to a user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	var m models.UserProfile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// Update updates profile fields
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	updates := map[string]interface{}{
		"bio":                      profile.Bio,
		"date_of_birth":            profile.DateOfBirth.Ptr(),
		"county":                   profile.County,
		"sub_county":               profile.SubCounty,
		"ward":                     profile.Ward,
		"postal_address":           profile.PostalAddress,
		"postal_code":              profile.PostalCode,
		"preferred_language":       profile.PreferredLanguage,
		"preferred_currency":       profile.PreferredCurrency,
		"notification_preferences": models.JSONMap(profile.NotificationPreferences),
		"profile_visibility":       string(profile.ProfileVisibility),
		"show_phone":               profile.ShowPhone,
		"show_email":               profile.ShowEmail,
		"updated_at":               time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserProfile{}).Where("user_id = ?", profile.UserID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SetProfileImage stores the profile image reference
func (r *ProfileRepository) SetProfileImage(ctx context.Context, userID uuid.UUID, path string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserProfile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"profile_image": path,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toProfileModel(p *entities.Profile) *models.UserProfile {
	return &models.UserProfile{
		ID:                      p.ID,
		UserID:                  p.UserID,
		ProfileImage:            p.ProfileImage.String,
		Bio:                     p.Bio,
		DateOfBirth:             p.DateOfBirth.Ptr(),
		County:                  p.County,
		SubCounty:               p.SubCounty,
		Ward:                    p.Ward,
		PostalAddress:           p.PostalAddress,
		PostalCode:              p.PostalCode,
		PreferredLanguage:       p.PreferredLanguage,
		PreferredCurrency:       p.PreferredCurrency,
		NotificationPreferences: models.JSONMap(p.NotificationPreferences),
		ProfileVisibility:       string(p.ProfileVisibility),
		ShowPhone:               p.ShowPhone,
		ShowEmail:               p.ShowEmail,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func toProfileEntity(m *models.UserProfile) *entities.Profile {
	return &entities.Profile{
		ID:                      m.ID,
		UserID:                  m.UserID,
		ProfileImage:            null.NewString(m.ProfileImage, m.ProfileImage != ""),
		Bio:                     m.Bio,
		DateOfBirth:             null.TimeFromPtr(m.DateOfBirth),
		County:                  m.County,
		SubCounty:               m.SubCounty,
		Ward:                    m.Ward,
		PostalAddress:           m.PostalAddress,
		PostalCode:              m.PostalCode,
		PreferredLanguage:       m.PreferredLanguage,
		PreferredCurrency:       m.PreferredCurrency,
		NotificationPreferences: map[string]any(m.NotificationPreferences),
		ProfileVisibility:       entities.ProfileVisibility(m.ProfileVisibility),
		ShowPhone:               m.ShowPhone,
		ShowEmail:               m.ShowEmail,
		CreatedAt:               m.CreatedAt,
		UpdatedAt:               m.UpdatedAt,
	}
}
