package models

import (
	"time"

	"github.com/google/uuid"
)

type LoginAttempt struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID          *uuid.UUID `gorm:"type:uuid;index:idx_login_user_success"`
	EmailOrUsername string     `gorm:"type:varchar(255);not null"`
	IPAddress       string     `gorm:"type:varchar(45);not null;index:idx_login_ip_time"`
	UserAgent       string     `gorm:"type:text"`
	Success         bool       `gorm:"default:false;index:idx_login_user_success"`
	Timestamp       time.Time  `gorm:"autoCreateTime;index:idx_login_ip_time"`
}
