package repositories

import (
	"context"

	"comphub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ProfileRepository defines profile data operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
	SetProfileImage(ctx context.Context, userID uuid.UUID, path string) error
}
