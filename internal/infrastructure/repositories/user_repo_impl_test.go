package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
)

func seedUser(t *testing.T, repo *UserRepository, username, email, phone string) *entities.User {
	t.Helper()
	now := time.Now()
	u := &entities.User{
		ID:                 uuid.New(),
		Username:           username,
		Email:              email,
		FirstName:          "Wanjiku",
		LastName:           "Kamau",
		PhoneNumber:        phone,
		PasswordHash:       "hash",
		UserType:           entities.UserTypeBuyer,
		VerificationStatus: entities.VerificationPending,
		TrustScore:         5.0,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "wanjiku", byID.Username)
	require.Equal(t, entities.UserTypeBuyer, byID.UserType)
	require.Equal(t, entities.VerificationPending, byID.VerificationStatus)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	byPhone, err := repo.GetByPhoneNumber(ctx, u.PhoneNumber)
	require.NoError(t, err)
	require.Equal(t, u.ID, byPhone.ID)

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_GetByLogin(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")

	byUsername, err := repo.GetByLogin(ctx, "wanjiku")
	require.NoError(t, err)
	require.Equal(t, u.ID, byUsername.ID)

	byEmail, err := repo.GetByLogin(ctx, "wanjiku@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByLogin(ctx, "ghost")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_UniqueViolations(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")

	dup := &entities.User{
		ID:           uuid.New(),
		Username:     "wanjiku",
		Email:        "other@example.com",
		PhoneNumber:  "+254700000001",
		PasswordHash: "hash",
		UserType:     entities.UserTypeBuyer,
	}
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)

	dup.Username = "other"
	dup.Email = "wanjiku@example.com"
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)

	dup.Email = "other@example.com"
	dup.PhoneNumber = "+254712345678"
	require.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrAlreadyExists)
}

func TestUserRepository_FieldUpdates(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "newhash"))
	require.NoError(t, repo.UpdateUserType(ctx, u.ID, entities.UserTypeVendor))
	require.NoError(t, repo.UpdateTrustScore(ctx, u.ID, 7.5))

	verifiedAt := time.Now()
	require.NoError(t, repo.SetVerificationStatus(ctx, u.ID, entities.VerificationVerified, verifiedAt))
	require.NoError(t, repo.TouchLastActive(ctx, u.ID, time.Now()))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "newhash", got.PasswordHash)
	require.Equal(t, entities.UserTypeVendor, got.UserType)
	require.Equal(t, entities.VerificationVerified, got.VerificationStatus)
	require.True(t, got.VerificationDate.Valid)
	require.InDelta(t, 7.5, got.TrustScore, 0.001)
	require.True(t, got.LastActive.Valid)

	require.ErrorIs(t, repo.UpdatePassword(ctx, uuid.New(), "x"), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.UpdateUserType(ctx, uuid.New(), entities.UserTypeVendor), domainerrors.ErrNotFound)
}

func TestUserRepository_ListWithSearch(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")
	seedUser(t, repo, "otieno", "otieno@example.com", "+254700000002")
	seedUser(t, repo, "achieng", "achieng@shops.co.ke", "+254700000003")

	all, total, err := repo.List(ctx, "", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 3)

	matched, total, err := repo.List(ctx, "otieno", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "otieno", matched[0].Username)

	// search also hits the email column
	byEmail, total, err := repo.List(ctx, "shops.co.ke", 10, 0)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, "achieng", byEmail[0].Username)

	paged, total, err := repo.List(ctx, "", 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, paged, 2)
}

func TestUserRepository_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := seedUser(t, repo, "wanjiku", "wanjiku@example.com", "+254712345678")

	require.NoError(t, repo.SoftDelete(ctx, u.ID))
	_, err := repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// the row is retained, only hidden from queries
	var count int64
	require.NoError(t, db.Table("users").Where("id = ?", u.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	require.ErrorIs(t, repo.SoftDelete(ctx, uuid.New()), domainerrors.ErrNotFound)
}
