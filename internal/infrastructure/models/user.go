package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Username           string     `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email              string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	FirstName          string     `gorm:"type:varchar(150)"`
	LastName           string     `gorm:"type:varchar(150)"`
	PhoneNumber        string     `gorm:"type:varchar(15);uniqueIndex;not null"`
	PasswordHash       string     `gorm:"type:varchar(255);not null"`
	UserType           string     `gorm:"type:varchar(10);not null;default:'buyer';index:idx_users_type_status"`
	VerificationStatus string     `gorm:"type:varchar(10);not null;default:'pending';index:idx_users_type_status"`
	VerificationDate   *time.Time `gorm:"type:timestamp"`
	TrustScore         float64    `gorm:"type:decimal(3,1);default:0.0"`
	EmailVerified      bool       `gorm:"default:false"`
	PhoneVerified      bool       `gorm:"default:false"`
	AcceptMarketing    bool       `gorm:"default:false"`
	TwoFactorEnabled   bool       `gorm:"default:false"`
	LastActive         *time.Time `gorm:"type:timestamp"`
	CreatedAt          time.Time  `gorm:"index"`
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
