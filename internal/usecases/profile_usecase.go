package usecases

import (
	"context"
	"io"

	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/pkg/imaging"
	"comphub.backend/pkg/storage"
)

// ProfileUsecase handles buyer-facing profile reads and updates
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
	store       storage.Store
	audit       *AuditRecorder
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo repositories.ProfileRepository, store storage.Store, audit *AuditRecorder) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		store:       store,
		audit:       audit,
	}
}

// GetProfile returns the profile belonging to a user
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	return u.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile applies a partial update to the user's profile
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput, ip, userAgent string) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.ProfileVisibility != "" && !entities.ValidProfileVisibility(input.ProfileVisibility) {
		return nil, domainerrors.BadRequest("unknown profile visibility")
	}

	applyProfileUpdate(profile, input)

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityProfileUpdate, "profile updated", ip, userAgent, nil)
	return profile, nil
}

func applyProfileUpdate(profile *entities.Profile, input *entities.UpdateProfileInput) {
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth.SetValid(*input.DateOfBirth)
	}
	if input.County != nil {
		profile.County = *input.County
	}
	if input.SubCounty != nil {
		profile.SubCounty = *input.SubCounty
	}
	if input.Ward != nil {
		profile.Ward = *input.Ward
	}
	if input.PostalAddress != nil {
		profile.PostalAddress = *input.PostalAddress
	}
	if input.PostalCode != nil {
		profile.PostalCode = *input.PostalCode
	}
	if input.PreferredLanguage != nil {
		profile.PreferredLanguage = *input.PreferredLanguage
	}
	if input.PreferredCurrency != nil {
		profile.PreferredCurrency = *input.PreferredCurrency
	}
	if input.ProfileVisibility != "" {
		profile.ProfileVisibility = input.ProfileVisibility
	}
	if input.NotificationPreferences != nil {
		profile.NotificationPreferences = input.NotificationPreferences
	}
	if input.ShowPhone != nil {
		profile.ShowPhone = *input.ShowPhone
	}
	if input.ShowEmail != nil {
		profile.ShowEmail = *input.ShowEmail
	}
}

// SetProfileImage stores an uploaded image under a fresh per-user path,
// bounds its dimensions, and points the profile at it. The previous image
// file is removed once the profile row references the new one.
func (u *ProfileUsecase) SetProfileImage(ctx context.Context, userID uuid.UUID, fileName string, r io.Reader, ip, userAgent string) (*entities.Profile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := storage.ProfileImagePath(userID, fileName)
	if err := u.store.Save(path, r); err != nil {
		return nil, err
	}

	if err := imaging.NormalizeProfileImage(u.store.AbsPath(path)); err != nil {
		_ = u.store.Remove(path)
		return nil, err
	}

	previous := profile.ProfileImage
	if err := u.profileRepo.SetProfileImage(ctx, userID, path); err != nil {
		_ = u.store.Remove(path)
		return nil, err
	}
	if previous.Valid && previous.String != "" {
		_ = u.store.Remove(previous.String)
	}

	profile.ProfileImage.SetValid(path)
	u.audit.RecordActivity(ctx, userID, entities.ActivityProfileUpdate, "profile image updated", ip, userAgent, map[string]any{"image": path})
	return profile, nil
}
