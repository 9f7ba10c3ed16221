package models

import (
	"time"

	"github.com/google/uuid"
)

type UserActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_activity_user_type"`
	ActivityType string    `gorm:"type:varchar(20);not null;index:idx_activity_user_type"`
	Description  string    `gorm:"type:varchar(255)"`
	IPAddress    string    `gorm:"type:varchar(45);not null"`
	UserAgent    string    `gorm:"type:text"`
	Metadata     JSONMap   `gorm:"type:jsonb;default:'{}'"`
	Timestamp    time.Time `gorm:"autoCreateTime;index"`
}
