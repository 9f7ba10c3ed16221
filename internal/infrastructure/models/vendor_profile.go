package models

import (
	"time"

	"github.com/google/uuid"
)

type VendorProfile struct {
	ID                         uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID                     uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName               string     `gorm:"type:varchar(200);not null"`
	BusinessRegistrationNumber string     `gorm:"type:varchar(50)"`
	BusinessType               string     `gorm:"type:varchar(20);not null"`
	KRAPin                     string     `gorm:"type:varchar(11)"`
	ShopName                   string     `gorm:"type:varchar(200);not null"`
	ShopDescription            string     `gorm:"type:varchar(1000)"`
	ShopCategory               string     `gorm:"type:varchar(20);not null;index:idx_vendor_category_featured"`
	ShopLogo                   string     `gorm:"type:varchar(255)"`
	PhysicalAddress            string     `gorm:"type:varchar(300);not null"`
	BuildingName               string     `gorm:"type:varchar(100)"`
	FloorNumber                string     `gorm:"type:varchar(10)"`
	ShopNumber                 string     `gorm:"type:varchar(20)"`
	Landmark                   string     `gorm:"type:varchar(100)"`
	Latitude                   *float64   `gorm:"type:decimal(10,8)"`
	Longitude                  *float64   `gorm:"type:decimal(11,8)"`
	BusinessPhone              string     `gorm:"type:varchar(15);not null"`
	BusinessEmail              string     `gorm:"type:varchar(255)"`
	WhatsappNumber             string     `gorm:"type:varchar(15)"`
	OperatingHours             JSONMap    `gorm:"type:jsonb;default:'{}'"`
	DeliveryAvailable          bool       `gorm:"default:false"`
	PickupAvailable            bool       `gorm:"default:true"`
	TokenBalance               int64      `gorm:"not null;default:0;check:token_balance >= 0;index"`
	TotalTokensPurchased       int64      `gorm:"not null;default:0;check:total_tokens_purchased >= 0"`
	TotalTokensUsed            int64      `gorm:"not null;default:0;check:total_tokens_used >= 0"`
	TotalSales                 float64    `gorm:"type:decimal(12,2);default:0.00"`
	TotalOrders                int64      `gorm:"not null;default:0;index:idx_vendor_rating_orders"`
	AverageRating              float64    `gorm:"type:decimal(3,2);default:0.00;index:idx_vendor_rating_orders"`
	ResponseRate               float64    `gorm:"type:decimal(5,2);default:0.00"`
	IsFeatured                 bool       `gorm:"default:false;index:idx_vendor_category_featured"`
	IsPremium                  bool       `gorm:"default:false"`
	AutoApproveOrders          bool       `gorm:"default:false"`
	ShopEstablishedDate        *time.Time `gorm:"type:date"`
	JoinedPlatformDate         time.Time  `gorm:"autoCreateTime"`
	LastTokenPurchase          *time.Time `gorm:"type:timestamp"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
