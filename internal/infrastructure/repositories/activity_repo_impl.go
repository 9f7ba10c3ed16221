package repositories

import (
	"context"

	"comphub.backend/internal/domain/entities"
	"comphub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoginAttemptRepository implements append-only login attempt storage
type LoginAttemptRepository struct {
	db *gorm.DB
}

// NewLoginAttemptRepository creates a new login attempt repository
func NewLoginAttemptRepository(db *gorm.DB) *LoginAttemptRepository {
	return &LoginAttemptRepository{db: db}
}

// Append records a login attempt. The user reference stays empty when the
// submitted handle resolved to no account.
func (r *LoginAttemptRepository) Append(ctx context.Context, attempt *entities.LoginAttempt) error {
	m := &models.LoginAttempt{
		ID:              attempt.ID,
		UserID:          uuidPtr(attempt.UserID),
		EmailOrUsername: attempt.EmailOrUsername,
		IPAddress:       attempt.IPAddress,
		UserAgent:       attempt.UserAgent,
		Success:         attempt.Success,
		Timestamp:       attempt.Timestamp,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByUser lists a user's login attempts, newest first
func (r *LoginAttemptRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.LoginAttempt, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.LoginAttempt{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var attemptModels []models.LoginAttempt
	if err := query.Find(&attemptModels).Error; err != nil {
		return nil, 0, err
	}

	attempts := make([]*entities.LoginAttempt, 0, len(attemptModels))
	for i := range attemptModels {
		m := &attemptModels[i]
		attempts = append(attempts, &entities.LoginAttempt{
			ID:              m.ID,
			UserID:          nullUUIDFromPtr(m.UserID),
			EmailOrUsername: m.EmailOrUsername,
			IPAddress:       m.IPAddress,
			UserAgent:       m.UserAgent,
			Success:         m.Success,
			Timestamp:       m.Timestamp,
		})
	}
	return attempts, total, nil
}

// ActivityRepository implements append-only activity storage
type ActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository
func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append records an activity
func (r *ActivityRepository) Append(ctx context.Context, activity *entities.Activity) error {
	m := &models.UserActivity{
		ID:           activity.ID,
		UserID:       activity.UserID,
		ActivityType: string(activity.ActivityType),
		Description:  activity.Description,
		IPAddress:    activity.IPAddress,
		UserAgent:    activity.UserAgent,
		Metadata:     models.JSONMap(activity.Metadata),
		Timestamp:    activity.Timestamp,
	}
	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByUser lists a user's activities, strictly newest first
func (r *ActivityRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Activity, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.UserActivity{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var activityModels []models.UserActivity
	if err := query.Find(&activityModels).Error; err != nil {
		return nil, 0, err
	}

	activities := make([]*entities.Activity, 0, len(activityModels))
	for i := range activityModels {
		m := &activityModels[i]
		activities = append(activities, &entities.Activity{
			ID:           m.ID,
			UserID:       m.UserID,
			ActivityType: entities.ActivityType(m.ActivityType),
			Description:  m.Description,
			IPAddress:    m.IPAddress,
			UserAgent:    m.UserAgent,
			Metadata:     map[string]any(m.Metadata),
			Timestamp:    m.Timestamp,
		})
	}
	return activities, total, nil
}
