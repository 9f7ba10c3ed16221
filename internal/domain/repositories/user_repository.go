package repositories

import (
	"context"
	"time"

	"comphub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// GetByLogin resolves a handle that may be either a username or an email.
	GetByLogin(ctx context.Context, login string) (*entities.User, error)
	GetByPhoneNumber(ctx context.Context, phone string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateUserType(ctx context.Context, id uuid.UUID, userType entities.UserType) error
	SetVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, at time.Time) error
	UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64) error
	TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}
