package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"comphub.backend/internal/domain/entities"
	"comphub.backend/internal/domain/repositories"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, login string) (*entities.User, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhoneNumber(ctx context.Context, phone string) (*entities.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserType(ctx context.Context, id uuid.UUID, userType entities.UserType) error {
	args := m.Called(ctx, id, userType)
	return args.Error(0)
}

func (m *MockUserRepository) SetVerificationStatus(ctx context.Context, id uuid.UUID, status entities.VerificationStatus, at time.Time) error {
	args := m.Called(ctx, id, status, at)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateTrustScore(ctx context.Context, id uuid.UUID, score float64) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

func (m *MockUserRepository) TouchLastActive(ctx context.Context, id uuid.UUID, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, search string, limit, offset int) ([]*entities.User, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock ProfileRepository
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) SetProfileImage(ctx context.Context, userID uuid.UUID, path string) error {
	args := m.Called(ctx, userID, path)
	return args.Error(0)
}

// Mock VendorRepository
type MockVendorRepository struct {
	mock.Mock
}

func (m *MockVendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vendor), args.Error(1)
}

func (m *MockVendorRepository) Update(ctx context.Context, vendor *entities.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) List(ctx context.Context, filter repositories.VendorListFilter, limit, offset int) ([]*entities.Vendor, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Vendor), args.Get(1).(int64), args.Error(2)
}

func (m *MockVendorRepository) AddPurchasedTokens(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockVendorRepository) SpendTokens(ctx context.Context, id uuid.UUID, amount int64) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

// Mock VerificationRepository
type MockVerificationRepository struct {
	mock.Mock
}

func (m *MockVerificationRepository) Create(ctx context.Context, doc *entities.VerificationDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockVerificationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.VerificationDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationDocument), args.Error(1)
}

func (m *MockVerificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.VerificationDocument, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.VerificationDocument), args.Error(1)
}

func (m *MockVerificationRepository) Exists(ctx context.Context, userID uuid.UUID, docType entities.DocumentType, docNumber string) (bool, error) {
	args := m.Called(ctx, userID, docType, docNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockVerificationRepository) Update(ctx context.Context, doc *entities.VerificationDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockVerificationRepository) ListPending(ctx context.Context, limit, offset int) ([]*entities.VerificationDocument, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.VerificationDocument), args.Get(1).(int64), args.Error(2)
}

// recordingLoginRepo and recordingActivityRepo capture audit writes
// without mock expectations, for tests that only assert on side effects.
type recordingLoginRepo struct {
	attempts []*entities.LoginAttempt
}

func (r *recordingLoginRepo) Append(_ context.Context, attempt *entities.LoginAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *recordingLoginRepo) ListByUser(context.Context, uuid.UUID, int, int) ([]*entities.LoginAttempt, int64, error) {
	return r.attempts, int64(len(r.attempts)), nil
}

type recordingActivityRepo struct {
	activities []*entities.Activity
}

func (r *recordingActivityRepo) Append(_ context.Context, activity *entities.Activity) error {
	r.activities = append(r.activities, activity)
	return nil
}

func (r *recordingActivityRepo) ListByUser(context.Context, uuid.UUID, int, int) ([]*entities.Activity, int64, error) {
	return r.activities, int64(len(r.activities)), nil
}
