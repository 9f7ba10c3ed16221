package repositories

import (
	"context"
	"errors"
	"time"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	domainRepos "comphub.backend/internal/domain/repositories"
	"comphub.backend/internal/infrastructure/models"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// VendorRepository implements vendor profile data operations
type VendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create creates a new vendor profile
func (r *VendorRepository) Create(ctx context.Context, vendor *entities.Vendor) error {
	m := toVendorModel(vendor)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a vendor profile by ID
func (r *VendorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	return r.getBy(ctx, "id = ?", id)
}

// GetByUserID gets the vendor profile attached to a user
func (r *VendorRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	return r.getBy(ctx, "user_id = ?", userID)
}

func (r *VendorRepository) getBy(ctx context.Context, query string, arg interface{}) (*entities.Vendor, error) {
	var m models.VendorProfile
	if err := GetDB(ctx, r.db).WithContext(ctx).Where(query, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toVendorEntity(&m), nil
}

// Update updates shop/business fields. Token counters are excluded on
// purpose; those only move through AddPurchasedTokens and SpendTokens.
func (r *VendorRepository) Update(ctx context.Context, vendor *entities.Vendor) error {
	updates := map[string]interface{}{
		"business_name":                vendor.BusinessName,
		"business_registration_number": vendor.BusinessRegistrationNumber,
		"business_type":                string(vendor.BusinessType),
		"kra_pin":                      vendor.KRAPin,
		"shop_name":                    vendor.ShopName,
		"shop_description":             vendor.ShopDescription,
		"shop_category":                string(vendor.ShopCategory),
		"shop_logo":                    vendor.ShopLogo.String,
		"physical_address":             vendor.PhysicalAddress,
		"building_name":                vendor.BuildingName,
		"floor_number":                 vendor.FloorNumber,
		"shop_number":                  vendor.ShopNumber,
		"landmark":                     vendor.Landmark,
		"latitude":                     vendor.Latitude.Ptr(),
		"longitude":                    vendor.Longitude.Ptr(),
		"business_phone":               vendor.BusinessPhone,
		"business_email":               vendor.BusinessEmail,
		"whatsapp_number":              vendor.WhatsappNumber,
		"operating_hours":              models.JSONMap(vendor.OperatingHours),
		"delivery_available":           vendor.DeliveryAvailable,
		"pickup_available":             vendor.PickupAvailable,
		"auto_approve_orders":          vendor.AutoApproveOrders,
		"shop_established_date":        vendor.ShopEstablishedDate.Ptr(),
		"updated_at":                   time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{}).Where("id = ?", vendor.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists vendor profiles with optional filters
func (r *VendorRepository) List(ctx context.Context, filter domainRepos.VendorListFilter, limit, offset int) ([]*entities.Vendor, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{})

	if filter.Category != "" {
		query = query.Where("shop_category = ?", string(filter.Category))
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.PremiumOnly {
		query = query.Where("is_premium = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("average_rating DESC, total_orders DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var vendorModels []models.VendorProfile
	if err := query.Find(&vendorModels).Error; err != nil {
		return nil, 0, err
	}

	vendors := make([]*entities.Vendor, 0, len(vendorModels))
	for i := range vendorModels {
		vendors = append(vendors, toVendorEntity(&vendorModels[i]))
	}
	return vendors, total, nil
}

// AddPurchasedTokens credits the balance and purchased counter in one
// guarded statement, keeping balance == purchased - used under concurrency.
func (r *VendorRepository) AddPurchasedTokens(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domainerrors.ErrInvalidInput
	}
	now := time.Now()
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"token_balance":          gorm.Expr("token_balance + ?", amount),
			"total_tokens_purchased": gorm.Expr("total_tokens_purchased + ?", amount),
			"last_token_purchase":    now,
			"updated_at":             now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SpendTokens debits the balance and credits the used counter. The balance
// guard lives in the WHERE clause, so concurrent spends serialize on the
// row and can never drive the balance negative.
func (r *VendorRepository) SpendTokens(ctx context.Context, id uuid.UUID, amount int64) error {
	if amount <= 0 {
		return domainerrors.ErrInvalidInput
	}
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{}).
		Where("id = ? AND token_balance >= ?", id, amount).
		Updates(map[string]interface{}{
			"token_balance":     gorm.Expr("token_balance - ?", amount),
			"total_tokens_used": gorm.Expr("total_tokens_used + ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing vendor from an empty balance.
		var count int64
		if err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.VendorProfile{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domainerrors.ErrNotFound
		}
		return domainerrors.ErrInsufficientTokens
	}
	return nil
}

func toVendorModel(v *entities.Vendor) *models.VendorProfile {
	return &models.VendorProfile{
		ID:                         v.ID,
		UserID:                     v.UserID,
		BusinessName:               v.BusinessName,
		BusinessRegistrationNumber: v.BusinessRegistrationNumber,
		BusinessType:               string(v.BusinessType),
		KRAPin:                     v.KRAPin,
		ShopName:                   v.ShopName,
		ShopDescription:            v.ShopDescription,
		ShopCategory:               string(v.ShopCategory),
		ShopLogo:                   v.ShopLogo.String,
		PhysicalAddress:            v.PhysicalAddress,
		BuildingName:               v.BuildingName,
		FloorNumber:                v.FloorNumber,
		ShopNumber:                 v.ShopNumber,
		Landmark:                   v.Landmark,
		Latitude:                   v.Latitude.Ptr(),
		Longitude:                  v.Longitude.Ptr(),
		BusinessPhone:              v.BusinessPhone,
		BusinessEmail:              v.BusinessEmail,
		WhatsappNumber:             v.WhatsappNumber,
		OperatingHours:             models.JSONMap(v.OperatingHours),
		DeliveryAvailable:          v.DeliveryAvailable,
		PickupAvailable:            v.PickupAvailable,
		TokenBalance:               v.TokenBalance,
		TotalTokensPurchased:       v.TotalTokensPurchased,
		TotalTokensUsed:            v.TotalTokensUsed,
		TotalSales:                 v.TotalSales,
		TotalOrders:                v.TotalOrders,
		AverageRating:              v.AverageRating,
		ResponseRate:               v.ResponseRate,
		IsFeatured:                 v.IsFeatured,
		IsPremium:                  v.IsPremium,
		AutoApproveOrders:          v.AutoApproveOrders,
		ShopEstablishedDate:        v.ShopEstablishedDate.Ptr(),
		JoinedPlatformDate:         v.JoinedPlatformDate,
		LastTokenPurchase:          v.LastTokenPurchase.Ptr(),
		CreatedAt:                  v.CreatedAt,
		UpdatedAt:                  v.UpdatedAt,
	}
}

func toVendorEntity(m *models.VendorProfile) *entities.Vendor {
	return &entities.Vendor{
		ID:                         m.ID,
		UserID:                     m.UserID,
		BusinessName:               m.BusinessName,
		BusinessRegistrationNumber: m.BusinessRegistrationNumber,
		BusinessType:               entities.BusinessType(m.BusinessType),
		KRAPin:                     m.KRAPin,
		ShopName:                   m.ShopName,
		ShopDescription:            m.ShopDescription,
		ShopCategory:               entities.ShopCategory(m.ShopCategory),
		ShopLogo:                   null.NewString(m.ShopLogo, m.ShopLogo != ""),
		PhysicalAddress:            m.PhysicalAddress,
		BuildingName:               m.BuildingName,
		FloorNumber:                m.FloorNumber,
		ShopNumber:                 m.ShopNumber,
		Landmark:                   m.Landmark,
		Latitude:                   null.Float64FromPtr(m.Latitude),
		Longitude:                  null.Float64FromPtr(m.Longitude),
		BusinessPhone:              m.BusinessPhone,
		BusinessEmail:              m.BusinessEmail,
		WhatsappNumber:             m.WhatsappNumber,
		OperatingHours:             map[string]any(m.OperatingHours),
		DeliveryAvailable:          m.DeliveryAvailable,
		PickupAvailable:            m.PickupAvailable,
		TokenBalance:               m.TokenBalance,
		TotalTokensPurchased:       m.TotalTokensPurchased,
		TotalTokensUsed:            m.TotalTokensUsed,
		TotalSales:                 m.TotalSales,
		TotalOrders:                m.TotalOrders,
		AverageRating:              m.AverageRating,
		ResponseRate:               m.ResponseRate,
		IsFeatured:                 m.IsFeatured,
		IsPremium:                  m.IsPremium,
		AutoApproveOrders:          m.AutoApproveOrders,
		ShopEstablishedDate:        null.TimeFromPtr(m.ShopEstablishedDate),
		JoinedPlatformDate:         m.JoinedPlatformDate,
		LastTokenPurchase:          null.TimeFromPtr(m.LastTokenPurchase),
		CreatedAt:                  m.CreatedAt,
		UpdatedAt:                  m.UpdatedAt,
	}
}
