package repositories

import (
	"context"

	"comphub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// LoginAttemptRepository defines append-only login attempt storage
type LoginAttemptRepository interface {
	Append(ctx context.Context, attempt *entities.LoginAttempt) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoginAttempt, int64, error)
}

// ActivityRepository defines append-only activity storage. Listings are
// newest-first.
type ActivityRepository interface {
	Append(ctx context.Context, activity *entities.Activity) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Activity, int64, error)
}
