package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// UserRepository implements user data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	m := &models.User{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		FirstName:          user.FirstName,
		LastName:           user.LastName,
		PhoneNumber:        user.PhoneNumber,
		PasswordHash:       user.PasswordHash,
		UserType:           string(user.UserType),
		VerificationStatus: string(user.VerificationStatus),
		TrustScore:         user.TrustScore,
		EmailVerified:      user.EmailVerified,
		PhoneVerified:      user.PhoneVerified,
		AcceptMarketing:    user.AcceptMarketing,
		TwoFactorEnabled:   user.TwoFactorEnabled,
		CreatedAt:          user.CreatedAt,
		UpdatedAt:          user.UpdatedAt,
	}

	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByEmail gets a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.getBy(ctx, "email = ?", email)
}

// GetByUsername gets a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.getBy(ctx, "username = ?", username)
}

// GetByLogin resolves a handle that may be a username or an email
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	if strings.Contains(login, "@") {
		return r.GetByEmail(ctx, login)
	}
	return r.GetByUsername(ctx, login)
}

// GetByPhoneNumber gets a user by phone number
func (r *UserRepository) GetByPhoneNumber(ctx context.Context, phone string) (*entities.User, error) {
	return r.getBy(ctx, "phone_number = ?", phone)
}

func (r *UserRepository) getBy(ctx context.Context, query string, arg interface{}) (*entities.User, error) {
	var m models.User
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// Update updates mutable account fields
func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	updates := map[string]interface{}{
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"email_verified":     user.EmailVerified,
		"phone_verified":     user.PhoneVerified,
		"accept_marketing":   user.AcceptMarketing,
		"two_factor_enabled": user.TwoFactorEnabled,
		"updated_at":         time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"password_hash": passwordHash,
		"updated_at":    time.Now(),
	})
}

// UpdateUserType changes the account type
func (r *UserRepository) UpdateUserType(ctx context.Context, id uuid.UUID, userType entities.UserType) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"user_type":  string(userType),
		"updated_at": time.Now(),
	})
}

// SetVerificationStatus transitions the account verification status
func (r *UserRepository) SetVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, at time.Time) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"verification_status": string(status),
		"verification_date":   at,
		"updated_at":          time.Now(),
	})
}

// UpdateTrustScore sets the trust score
func (r *UserRepository) UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64) error {
	return r.updateFields(ctx, id, map[string]interface{}{
		"trust_score": score,
		"updated_at":  time.Now(),
	})
}

// TouchLastActive stamps the last activity time
func (r *UserRepository) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.updateFields(ctx, id, map[string]interface{}{"last_active": at})
}

func (r *UserRepository) updateFields(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists users with an optional search filter over username and email
func (r *UserRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.User{})

	if search != "" {
		searchTerm := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var userModels []models.User
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entities.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, toUserEntity(&userModels[i]))
	}
	return users, total, nil
}

// SoftDelete soft deletes a user
func (r *UserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:                 m.ID,
		Username:           m.Username,
		Email:              m.Email,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		PhoneNumber:        m.PhoneNumber,
		PasswordHash:       m.PasswordHash,
		UserType:           entities.UserType(m.UserType),
		VerificationStatus: entities.VerificationStatus(m.VerificationStatus),
		VerificationDate:   null.TimeFromPtr(m.VerificationDate),
		TrustScore:         m.TrustScore,
		EmailVerified:      m.EmailVerified,
		PhoneVerified:      m.PhoneVerified,
		AcceptMarketing:    m.AcceptMarketing,
		TwoFactorEnabled:   m.TwoFactorEnabled,
		LastActive:         null.TimeFromPtr(m.LastActive),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// isUniqueViolation reports whether err came from a unique constraint.
// Matches both the postgres and the sqlite wording so repository tests can
// exercise the same path.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}
