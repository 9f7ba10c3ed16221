package models

import (
	"time"

	"github.com/google/uuid"
)

type UserVerification struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_verification_user_doc"`
	DocumentType      string     `gorm:"type:varchar(20);not null;uniqueIndex:idx_verification_user_doc"`
	DocumentFile      string     `gorm:"type:varchar(255);not null"`
	DocumentNumber    string     `gorm:"type:varchar(50);uniqueIndex:idx_verification_user_doc"`
	SubmittedAt       time.Time  `gorm:"autoCreateTime;index"`
	VerifiedBy        *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL"`
	VerifiedAt        *time.Time `gorm:"type:timestamp"`
	VerificationNotes string     `gorm:"type:text"`
	IsApproved        bool       `gorm:"default:false;index:idx_verification_user_approved"`
	ExpiryDate        *time.Time `gorm:"type:date"`
	IsPrimary         bool       `gorm:"default:false"`
}
