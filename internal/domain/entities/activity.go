package entities

import (
	"time"

	"github.com/google/uuid"
)

// ActivityType represents the kinds of tracked user activity
type ActivityType string

const (
	ActivityLogin              ActivityType = "login"
	ActivityLogout             ActivityType = "logout"
	ActivityProfileUpdate      ActivityType = "profile_update"
	ActivityPasswordChange     ActivityType = "password_change"
	ActivityVerificationSubmit ActivityType = "verification_submit"
	ActivityProductView        ActivityType = "product_view"
	ActivityShopVisit          ActivityType = "shop_visit"
	ActivitySearch             ActivityType = "search"
	ActivityPurchase           ActivityType = "purchase"
	ActivityReviewPosted       ActivityType = "review_posted"
	ActivityOther              ActivityType = "other"
)

// ValidActivityType reports whether t is a known activity type
func ValidActivityType(t ActivityType) bool {
	switch t {
	case ActivityLogin, ActivityLogout, ActivityProfileUpdate, ActivityPasswordChange,
		ActivityVerificationSubmit, ActivityProductView, ActivityShopVisit,
		ActivitySearch, ActivityPurchase, ActivityReviewPosted, ActivityOther:
		return true
	}
	return false
}

// LoginAttempt records an authentication attempt. UserID is unset when the
// submitted handle resolved to no account.
type LoginAttempt struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.NullUUID `json:"userId,omitempty"`
	EmailOrUsername string        `json:"emailOrUsername"`
	IPAddress       string        `json:"ipAddress"`
	UserAgent       string        `json:"userAgent"`
	Success         bool          `json:"success"`
	Timestamp       time.Time     `json:"timestamp"`
}

// Activity records a typed user action for analytics and security
type Activity struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"userId"`
	ActivityType ActivityType   `json:"activityType"`
	Description  string         `json:"description"`
	IPAddress    string         `json:"ipAddress"`
	UserAgent    string         `json:"userAgent"`
	Metadata     map[string]any `json:"metadata"`
	Timestamp    time.Time      `json:"timestamp"`
}
