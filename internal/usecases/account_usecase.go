package usecases

import (
	"context"
	"errors"
	"time"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/pkg/crypto"
	"comphub.backend/pkg/jwt"
	"comphub.backend/pkg/utils"
	"github.com/google/uuid"
)

// AccountUsecase handles registration, authentication and account
// lifecycle. Dependent Profile/Vendor records are provisioned inside the
// registration transaction, so a failed provisioning rolls back the
// account as well.
type AccountUsecase struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	vendorRepo  repositories.VendorRepository
	uow         repositories.UnitOfWork
	jwtService  *jwt.JWTService
	audit       *AuditRecorder
}

// NewAccountUsecase creates a new account usecase
func NewAccountUsecase(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	vendorRepo repositories.VendorRepository,
	uow repositories.UnitOfWork,
	jwtService *jwt.JWTService,
	audit *AuditRecorder,
) *AccountUsecase {
	return &AccountUsecase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		vendorRepo:  vendorRepo,
		uow:         uow,
		jwtService:  jwtService,
		audit:       audit,
	}
}

// Register creates a new account together with its dependent records
func (u *AccountUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, error) {
	userType := input.UserType
	if userType == "" {
		userType = entities.UserTypeBuyer
	}
	if !entities.ValidUserType(userType) {
		return nil, domainerrors.BadRequest("unknown user type")
	}
	// Admin accounts are never self-registered.
	if userType == entities.UserTypeAdmin {
		return nil, domainerrors.Forbidden("cannot register an admin account")
	}

	if !entities.ValidPhoneNumber(input.PhoneNumber) {
		return nil, domainerrors.ErrInvalidPhoneNumber
	}

	if err := u.checkUniqueness(ctx, input); err != nil {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                 utils.GenerateUUIDv7(),
		Username:           input.Username,
		Email:              input.Email,
		FirstName:          input.FirstName,
		LastName:           input.LastName,
		PhoneNumber:        input.PhoneNumber,
		PasswordHash:       passwordHash,
		UserType:           userType,
		VerificationStatus: entities.VerificationPending,
		AcceptMarketing:    input.AcceptMarketing,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.Create(txCtx, user); err != nil {
			return err
		}
		return u.provisionDependents(txCtx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// provisionDependents creates the records every account type requires:
// one profile unconditionally, plus a vendor profile for vendor accounts.
// Must run inside the caller's transaction.
func (u *AccountUsecase) provisionDependents(ctx context.Context, user *entities.User) error {
	if err := u.profileRepo.Create(ctx, entities.NewDefaultProfile(user.ID)); err != nil {
		return domainerrors.Consistency("failed to provision profile")
	}
	if user.UserType == entities.UserTypeVendor {
		if err := u.vendorRepo.Create(ctx, entities.NewDefaultVendor(user)); err != nil {
			return domainerrors.Consistency("failed to provision vendor profile")
		}
	}
	return nil
}

func (u *AccountUsecase) checkUniqueness(ctx context.Context, input *entities.CreateUserInput) error {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return domainerrors.Conflict("email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if _, err := u.userRepo.GetByUsername(ctx, input.Username); err == nil {
		return domainerrors.Conflict("username already taken")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	if _, err := u.userRepo.GetByPhoneNumber(ctx, input.PhoneNumber); err == nil {
		return domainerrors.ErrPhoneNumberTaken
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}
	return nil
}

// Login authenticates a user and returns tokens. Every attempt is
// recorded, including ones where the handle resolves to no account.
func (u *AccountUsecase) Login(ctx context.Context, input *entities.LoginInput, ip, userAgent string) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByLogin(ctx, input.Login)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			u.audit.RecordLoginAttempt(ctx, uuid.NullUUID{}, input.Login, ip, userAgent, false)
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	userRef := uuid.NullUUID{UUID: user.ID, Valid: true}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		u.audit.RecordLoginAttempt(ctx, userRef, input.Login, ip, userAgent, false)
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.UserType))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := u.userRepo.TouchLastActive(ctx, user.ID, now); err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	user.LastActive.SetValid(now)

	u.audit.RecordLoginAttempt(ctx, userRef, input.Login, ip, userAgent, true)
	u.audit.RecordActivity(ctx, user.ID, entities.ActivityLogin, "signed in", ip, userAgent, nil)

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh token pair
func (u *AccountUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}

	// Re-read the account so a type change or deletion invalidates old claims.
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.UserType))
}

// Logout records the logout activity. Session teardown happens in the
// handler layer where the session store lives.
func (u *AccountUsecase) Logout(ctx context.Context, userID uuid.UUID, ip, userAgent string) {
	u.audit.RecordActivity(ctx, userID, entities.ActivityLogout, "signed out", ip, userAgent, nil)
}

// GetMe returns the authenticated user's account
func (u *AccountUsecase) GetMe(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// ChangePassword verifies the current password and replaces it
func (u *AccountUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput, ip, userAgent string) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	if err := u.userRepo.UpdatePassword(ctx, userID, newHash); err != nil {
		return err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityPasswordChange, "password changed", ip, userAgent, nil)
	return nil
}

// ChangeUserType changes an account's type. Admin only. Promoting to
// vendor runs the same provisioning path as registration, so the vendor
// profile exists exactly when the account is vendor-typed. Demoting keeps
// the vendor profile for history; CanSell turns false because it derives
// from the type.
func (u *AccountUsecase) ChangeUserType(ctx context.Context, actor *entities.User, userID uuid.UUID, newType entities.UserType) (*entities.User, error) {
	if actor == nil || actor.UserType != entities.UserTypeAdmin {
		return nil, domainerrors.Forbidden("only admins can change account types")
	}
	if !entities.ValidUserType(newType) {
		return nil, domainerrors.BadRequest("unknown user type")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.UserType == newType {
		return user, nil
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.userRepo.UpdateUserType(txCtx, userID, newType); err != nil {
			return err
		}
		if newType == entities.UserTypeVendor {
			_, err := u.vendorRepo.GetByUserID(txCtx, userID)
			if errors.Is(err, domainerrors.ErrNotFound) {
				user.UserType = entities.UserTypeVendor
				return u.provisionVendor(txCtx, user)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.UserType = newType
	return user, nil
}

func (u *AccountUsecase) provisionVendor(ctx context.Context, user *entities.User) error {
	if err := u.vendorRepo.Create(ctx, entities.NewDefaultVendor(user)); err != nil {
		return domainerrors.Consistency("failed to provision vendor profile")
	}
	return nil
}

// SetVerificationStatus transitions an account's verification status.
// Verifier (admin) only.
func (u *AccountUsecase) SetVerificationStatus(ctx context.Context, actor *entities.User, userID uuid.UUID, status entities.VerificationStatus) error {
	if actor == nil || actor.UserType != entities.UserTypeAdmin {
		return domainerrors.Forbidden("only verifiers can change verification status")
	}
	if !entities.ValidVerificationStatus(status) {
		return domainerrors.BadRequest("unknown verification status")
	}
	return u.userRepo.SetVerificationStatus(ctx, userID, status, time.Now())
}

// UpdateTrustScore sets an account's trust score. Admin only.
func (u *AccountUsecase) UpdateTrustScore(ctx context.Context, actor *entities.User, userID uuid.UUID, score float64) error {
	if actor == nil || actor.UserType != entities.UserTypeAdmin {
		return domainerrors.Forbidden("only admins can set trust scores")
	}
	if score < entities.MinTrustScore || score > entities.MaxTrustScore {
		return domainerrors.BadRequest("trust score out of range")
	}
	return u.userRepo.UpdateTrustScore(ctx, userID, score)
}

// ListUsers lists accounts for the admin panel
func (u *AccountUsecase) ListUsers(ctx context.Context, actor *entities.User, search string, limit, offset int) ([]*entities.User, int64, error) {
	if actor == nil || actor.UserType != entities.UserTypeAdmin {
		return nil, 0, domainerrors.Forbidden("only admins can list accounts")
	}
	return u.userRepo.List(ctx, search, limit, offset)
}

// DeleteUser soft deletes an account. Admin only.
func (u *AccountUsecase) DeleteUser(ctx context.Context, actor *entities.User, userID uuid.UUID) error {
	if actor == nil || actor.UserType != entities.UserTypeAdmin {
		return domainerrors.Forbidden("only admins can delete accounts")
	}
	return u.userRepo.SoftDelete(ctx, userID)
}
