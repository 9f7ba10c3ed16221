package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserType represents account types on the marketplace
type UserType string

const (
	UserTypeBuyer  UserType = "buyer"
	UserTypeVendor UserType = "vendor"
	UserTypeAdmin  UserType = "admin"
)

// VerificationStatus represents account verification status
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "pending"
	VerificationVerified  VerificationStatus = "verified"
	VerificationRejected  VerificationStatus = "rejected"
	VerificationSuspended VerificationStatus = "suspended"
)

// Kenyan MSISDN, international form only: +254 followed by 9 digits.
var phonePattern = regexp.MustCompile(`^\+254[0-9]{9}$`)

// ValidPhoneNumber reports whether s is a valid Kenyan phone number
func ValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// TrustScore bounds
const (
	MinTrustScore = 0.0
	MaxTrustScore = 9.9
)

// User represents a marketplace account (buyer, vendor or admin)
type User struct {
	ID                 uuid.UUID          `json:"id"`
	Username           string             `json:"username"`
	Email              string             `json:"email"`
	FirstName          string             `json:"firstName"`
	LastName           string             `json:"lastName"`
	PhoneNumber        string             `json:"phoneNumber"`
	PasswordHash       string             `json:"-"`
	UserType           UserType           `json:"userType"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationDate   null.Time          `json:"verificationDate,omitempty"`
	TrustScore         float64            `json:"trustScore"`
	EmailVerified      bool               `json:"emailVerified"`
	PhoneVerified      bool               `json:"phoneVerified"`
	AcceptMarketing    bool               `json:"acceptMarketing"`
	TwoFactorEnabled   bool               `json:"twoFactorEnabled"`
	LastActive         null.Time          `json:"lastActive,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          null.Time          `json:"-"`
}

// FullName returns the user's display name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsVerified reports whether the account passed verification
func (u *User) IsVerified() bool {
	return u.VerificationStatus == VerificationVerified
}

// CanSell reports whether the account may list products
func (u *User) CanSell() bool {
	return u.UserType == UserTypeVendor && u.IsVerified()
}

// IsActiveBuyer is derived from the user type rather than stored, so it
// can never drift from the type after a promotion.
func (u *User) IsActiveBuyer() bool {
	return u.UserType == UserTypeBuyer
}

// IsActiveVendor is derived from the user type rather than stored.
func (u *User) IsActiveVendor() bool {
	return u.UserType == UserTypeVendor
}

// ValidUserType reports whether t is a known user type
func ValidUserType(t UserType) bool {
	return t == UserTypeBuyer || t == UserTypeVendor || t == UserTypeAdmin
}

// ValidVerificationStatus reports whether s is a known verification status
func ValidVerificationStatus(s VerificationStatus) bool {
	switch s {
	case VerificationPending, VerificationVerified, VerificationRejected, VerificationSuspended:
		return true
	}
	return false
}

// CreateUserInput represents input for registration
type CreateUserInput struct {
	Username        string   `json:"username" binding:"required,min=3,max=150"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8"`
	PhoneNumber     string   `json:"phoneNumber" binding:"required"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	UserType        UserType `json:"userType"`
	AcceptMarketing bool     `json:"acceptMarketing"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Login      string `json:"login" binding:"required"` // username or email
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// ChangeUserTypeInput represents input for an admin changing an account type
type ChangeUserTypeInput struct {
	UserType UserType `json:"userType" binding:"required"`
}
