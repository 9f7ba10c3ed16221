package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID                  uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	ProfileImage            string     `gorm:"type:varchar(255)"`
	Bio                     string     `gorm:"type:varchar(500)"`
	DateOfBirth             *time.Time `gorm:"type:date"`
	County                  string     `gorm:"type:varchar(50);default:'Nairobi'"`
	SubCounty               string     `gorm:"type:varchar(50)"`
	Ward                    string     `gorm:"type:varchar(50)"`
	PostalAddress           string     `gorm:"type:varchar(100)"`
	PostalCode              string     `gorm:"type:varchar(10)"`
	PreferredLanguage       string     `gorm:"type:varchar(10);default:'en'"`
	PreferredCurrency       string     `gorm:"type:varchar(3);default:'KES'"`
	NotificationPreferences JSONMap    `gorm:"type:jsonb;default:'{}'"`
	ProfileVisibility       string     `gorm:"type:varchar(10);default:'public'"`
	ShowPhone               bool       `gorm:"default:false"`
	ShowEmail               bool       `gorm:"default:false"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
