package entities

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"comphub.backend/pkg/utils"
)

// BusinessType represents vendor business registration types
type BusinessType string

const (
	BusinessSoleProprietor BusinessType = "sole_proprietor"
	BusinessPartnership    BusinessType = "partnership"
	BusinessLimitedCompany BusinessType = "limited_company"
	BusinessCooperative    BusinessType = "cooperative"
	BusinessOther          BusinessType = "other"
)

// ShopCategory represents vendor shop categories
type ShopCategory string

const (
	ShopCategoryComputers   ShopCategory = "computers"
	ShopCategoryMobile      ShopCategory = "mobile"
	ShopCategoryAccessories ShopCategory = "accessories"
	ShopCategoryNetworking  ShopCategory = "networking"
	ShopCategorySoftware    ShopCategory = "software"
	ShopCategoryRepairs     ShopCategory = "repairs"
	ShopCategoryGeneral     ShopCategory = "general"
)

var kraPINPattern = regexp.MustCompile(`^[AP][0-9]{9}[A-Z]$`)

// ValidKRAPIN reports whether s is a valid KRA PIN
func ValidKRAPIN(s string) bool {
	return kraPINPattern.MatchString(s)
}

// ValidBusinessType reports whether t is a known business type
func ValidBusinessType(t BusinessType) bool {
	switch t {
	case BusinessSoleProprietor, BusinessPartnership, BusinessLimitedCompany, BusinessCooperative, BusinessOther:
		return true
	}
	return false
}

// ValidShopCategory reports whether c is a known shop category
func ValidShopCategory(c ShopCategory) bool {
	switch c {
	case ShopCategoryComputers, ShopCategoryMobile, ShopCategoryAccessories,
		ShopCategoryNetworking, ShopCategorySoftware, ShopCategoryRepairs, ShopCategoryGeneral:
		return true
	}
	return false
}

// Vendor represents the shop/business extension of a vendor-typed user
type Vendor struct {
	ID                         uuid.UUID      `json:"id"`
	UserID                     uuid.UUID      `json:"userId"`
	BusinessName               string         `json:"businessName"`
	BusinessRegistrationNumber string         `json:"businessRegistrationNumber"`
	BusinessType               BusinessType   `json:"businessType"`
	KRAPin                     string         `json:"kraPin"`
	ShopName                   string         `json:"shopName"`
	ShopDescription            string         `json:"shopDescription"`
	ShopCategory               ShopCategory   `json:"shopCategory"`
	ShopLogo                   null.String    `json:"shopLogo,omitempty"`
	PhysicalAddress            string         `json:"physicalAddress"`
	BuildingName               string         `json:"buildingName"`
	FloorNumber                string         `json:"floorNumber"`
	ShopNumber                 string         `json:"shopNumber"`
	Landmark                   string         `json:"landmark"`
	Latitude                   null.Float64   `json:"latitude,omitempty"`
	Longitude                  null.Float64   `json:"longitude,omitempty"`
	BusinessPhone              string         `json:"businessPhone"`
	BusinessEmail              string         `json:"businessEmail"`
	WhatsappNumber             string         `json:"whatsappNumber"`
	OperatingHours             map[string]any `json:"operatingHours"`
	DeliveryAvailable          bool           `json:"deliveryAvailable"`
	PickupAvailable            bool           `json:"pickupAvailable"`
	TokenBalance               int64          `json:"tokenBalance"`
	TotalTokensPurchased       int64          `json:"totalTokensPurchased"`
	TotalTokensUsed            int64          `json:"totalTokensUsed"`
	TotalSales                 float64        `json:"totalSales"`
	TotalOrders                int64          `json:"totalOrders"`
	AverageRating              float64        `json:"averageRating"`
	ResponseRate               float64        `json:"responseRate"`
	IsFeatured                 bool           `json:"isFeatured"`
	IsPremium                  bool           `json:"isPremium"`
	AutoApproveOrders          bool           `json:"autoApproveOrders"`
	ShopEstablishedDate        null.Time      `json:"shopEstablishedDate,omitempty"`
	JoinedPlatformDate         time.Time      `json:"joinedPlatformDate"`
	LastTokenPurchase          null.Time      `json:"lastTokenPurchase,omitempty"`
	CreatedAt                  time.Time      `json:"createdAt"`
	UpdatedAt                  time.Time      `json:"updatedAt"`
}

// HasSufficientTokens reports whether the vendor can perform token-gated actions
func (v *Vendor) HasSufficientTokens() bool {
	return v.TokenBalance > 0
}

// IsTopRated reports whether the vendor qualifies for the top-rated badge
func (v *Vendor) IsTopRated() bool {
	return v.AverageRating >= 4.5 && v.TotalOrders >= 50
}

// NewDefaultVendor returns the vendor profile provisioned for a freshly
// registered vendor account. Placeholder shop text, the user's own phone
// as business phone.
func NewDefaultVendor(user *User) *Vendor {
	return &Vendor{
		ID:              utils.GenerateUUIDv7(),
		UserID:          user.ID,
		BusinessName:    user.Username + "'s Business",
		ShopName:        user.Username + "'s Shop",
		ShopDescription: "Welcome to our shop!",
		BusinessType:    BusinessSoleProprietor,
		ShopCategory:    ShopCategoryGeneral,
		PhysicalAddress: "Nairobi, Kenya",
		BusinessPhone:   user.PhoneNumber,
		PickupAvailable: true,
		OperatingHours:  map[string]any{},
	}
}

// UpdateVendorInput represents input for updating the shop/business profile
type UpdateVendorInput struct {
	BusinessName               *string        `json:"businessName,omitempty" binding:"omitempty,min=2,max=200"`
	BusinessRegistrationNumber *string        `json:"businessRegistrationNumber,omitempty" binding:"omitempty,max=50"`
	BusinessType               BusinessType   `json:"businessType,omitempty"`
	KRAPin                     *string        `json:"kraPin,omitempty"`
	ShopName                   *string        `json:"shopName,omitempty" binding:"omitempty,min=2,max=200"`
	ShopDescription            *string        `json:"shopDescription,omitempty" binding:"omitempty,max=1000"`
	ShopCategory               ShopCategory   `json:"shopCategory,omitempty"`
	PhysicalAddress            *string        `json:"physicalAddress,omitempty" binding:"omitempty,max=300"`
	BuildingName               *string        `json:"buildingName,omitempty" binding:"omitempty,max=100"`
	FloorNumber                *string        `json:"floorNumber,omitempty" binding:"omitempty,max=10"`
	ShopNumber                 *string        `json:"shopNumber,omitempty" binding:"omitempty,max=20"`
	Landmark                   *string        `json:"landmark,omitempty" binding:"omitempty,max=100"`
	Latitude                   *float64       `json:"latitude,omitempty"`
	Longitude                  *float64       `json:"longitude,omitempty"`
	BusinessPhone              *string        `json:"businessPhone,omitempty"`
	BusinessEmail              *string        `json:"businessEmail,omitempty" binding:"omitempty,email"`
	WhatsappNumber             *string        `json:"whatsappNumber,omitempty"`
	OperatingHours             map[string]any `json:"operatingHours,omitempty"`
	DeliveryAvailable          *bool          `json:"deliveryAvailable,omitempty"`
	PickupAvailable            *bool          `json:"pickupAvailable,omitempty"`
	AutoApproveOrders          *bool          `json:"autoApproveOrders,omitempty"`
	ShopEstablishedDate        *time.Time     `json:"shopEstablishedDate,omitempty"`
}

// TokenTransactionInput represents input for a token purchase or spend
type TokenTransactionInput struct {
	Amount int64  `json:"amount" binding:"required,gt=0"`
	Reason string `json:"reason,omitempty" binding:"omitempty,max=255"`
}
