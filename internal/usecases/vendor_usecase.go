package usecases

import (
	"context"
	"io"

	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/pkg/storage"
)

// VendorUsecase handles shop/business profiles and vendor token accounting
type VendorUsecase struct {
	vendorRepo repositories.VendorRepository
	userRepo   repositories.UserRepository
	uow        repositories.UnitOfWork
	store      storage.Store
	audit      *AuditRecorder
}

// NewVendorUsecase creates a new vendor usecase
func NewVendorUsecase(
	vendorRepo repositories.VendorRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	store storage.Store,
	audit *AuditRecorder,
) *VendorUsecase {
	return &VendorUsecase{
		vendorRepo: vendorRepo,
		userRepo:   userRepo,
		uow:        uow,
		store:      store,
		audit:      audit,
	}
}

// GetVendor returns a vendor profile by its own id
func (u *VendorUsecase) GetVendor(ctx context.Context, id uuid.UUID) (*entities.Vendor, error) {
	return u.vendorRepo.GetByID(ctx, id)
}

// GetVendorByUser returns the vendor profile attached to a user account
func (u *VendorUsecase) GetVendorByUser(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error) {
	return u.vendorRepo.GetByUserID(ctx, userID)
}

// UpdateVendor applies a partial update to the caller's own shop profile.
// Token counters and performance metrics are not updatable through here.
func (u *VendorUsecase) UpdateVendor(ctx context.Context, userID uuid.UUID, input *entities.UpdateVendorInput, ip, userAgent string) (*entities.Vendor, error) {
	vendor, err := u.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.KRAPin != nil && *input.KRAPin != "" && !entities.ValidKRAPIN(*input.KRAPin) {
		return nil, domainerrors.ErrInvalidKRAPin
	}
	if input.BusinessType != "" && !entities.ValidBusinessType(input.BusinessType) {
		return nil, domainerrors.BadRequest("unknown business type")
	}
	if input.ShopCategory != "" && !entities.ValidShopCategory(input.ShopCategory) {
		return nil, domainerrors.BadRequest("unknown shop category")
	}
	if input.BusinessPhone != nil && *input.BusinessPhone != "" && !entities.ValidPhoneNumber(*input.BusinessPhone) {
		return nil, domainerrors.ErrInvalidPhoneNumber
	}
	if input.WhatsappNumber != nil && *input.WhatsappNumber != "" && !entities.ValidPhoneNumber(*input.WhatsappNumber) {
		return nil, domainerrors.ErrInvalidPhoneNumber
	}

	applyVendorUpdate(vendor, input)

	if err := u.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityProfileUpdate, "shop profile updated", ip, userAgent, nil)
	return vendor, nil
}

func applyVendorUpdate(vendor *entities.Vendor, input *entities.UpdateVendorInput) {
	if input.BusinessName != nil {
		vendor.BusinessName = *input.BusinessName
	}
	if input.BusinessRegistrationNumber != nil {
		vendor.BusinessRegistrationNumber = *input.BusinessRegistrationNumber
	}
	if input.BusinessType != "" {
		vendor.BusinessType = input.BusinessType
	}
	if input.KRAPin != nil {
		vendor.KRAPin = *input.KRAPin
	}
	if input.ShopName != nil {
		vendor.ShopName = *input.ShopName
	}
	if input.ShopDescription != nil {
		vendor.ShopDescription = *input.ShopDescription
	}
	if input.ShopCategory != "" {
		vendor.ShopCategory = input.ShopCategory
	}
	if input.PhysicalAddress != nil {
		vendor.PhysicalAddress = *input.PhysicalAddress
	}
	if input.BuildingName != nil {
		vendor.BuildingName = *input.BuildingName
	}
	if input.FloorNumber != nil {
		vendor.FloorNumber = *input.FloorNumber
	}
	if input.ShopNumber != nil {
		vendor.ShopNumber = *input.ShopNumber
	}
	if input.Landmark != nil {
		vendor.Landmark = *input.Landmark
	}
	if input.Latitude != nil {
		vendor.Latitude.SetValid(*input.Latitude)
	}
	if input.Longitude != nil {
		vendor.Longitude.SetValid(*input.Longitude)
	}
	if input.BusinessPhone != nil {
		vendor.BusinessPhone = *input.BusinessPhone
	}
	if input.BusinessEmail != nil {
		vendor.BusinessEmail = *input.BusinessEmail
	}
	if input.WhatsappNumber != nil {
		vendor.WhatsappNumber = *input.WhatsappNumber
	}
	if input.OperatingHours != nil {
		vendor.OperatingHours = input.OperatingHours
	}
	if input.DeliveryAvailable != nil {
		vendor.DeliveryAvailable = *input.DeliveryAvailable
	}
	if input.PickupAvailable != nil {
		vendor.PickupAvailable = *input.PickupAvailable
	}
	if input.AutoApproveOrders != nil {
		vendor.AutoApproveOrders = *input.AutoApproveOrders
	}
	if input.ShopEstablishedDate != nil {
		vendor.ShopEstablishedDate.SetValid(*input.ShopEstablishedDate)
	}
}

// SetShopLogo stores an uploaded logo and points the shop profile at it
func (u *VendorUsecase) SetShopLogo(ctx context.Context, userID uuid.UUID, fileName string, r io.Reader, ip, userAgent string) (*entities.Vendor, error) {
	vendor, err := u.vendorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	path := storage.ShopLogoPath(vendor.UserID, fileName)
	if err := u.store.Save(path, r); err != nil {
		return nil, err
	}

	previous := vendor.ShopLogo
	vendor.ShopLogo.SetValid(path)
	if err := u.vendorRepo.Update(ctx, vendor); err != nil {
		_ = u.store.Remove(path)
		return nil, err
	}
	if previous.Valid && previous.String != "" {
		_ = u.store.Remove(previous.String)
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityProfileUpdate, "shop logo updated", ip, userAgent, map[string]any{"logo": path})
	return vendor, nil
}

// ListVendors returns vendor shops matching the filter
func (u *VendorUsecase) ListVendors(ctx context.Context, filter repositories.VendorListFilter, limit, offset int) ([]*entities.Vendor, int64, error) {
	if filter.Category != "" && !entities.ValidShopCategory(filter.Category) {
		return nil, 0, domainerrors.BadRequest("unknown shop category")
	}
	return u.vendorRepo.List(ctx, filter, limit, offset)
}

// PurchaseTokens credits purchased tokens onto the vendor's balance
func (u *VendorUsecase) PurchaseTokens(ctx context.Context, userID uuid.UUID, input *entities.TokenTransactionInput, ip, userAgent string) (*entities.Vendor, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("token amount must be positive")
	}

	var vendor *entities.Vendor
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		v, err := u.vendorRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if err := u.vendorRepo.AddPurchasedTokens(txCtx, v.ID, input.Amount); err != nil {
			return err
		}
		vendor, err = u.vendorRepo.GetByID(txCtx, v.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityPurchase, "tokens purchased", ip, userAgent, map[string]any{
		"amount": input.Amount,
		"reason": input.Reason,
	})
	return vendor, nil
}

// SpendTokens debits tokens from the vendor's balance. The balance can
// never go negative; attempts to overspend fail without partial effect.
func (u *VendorUsecase) SpendTokens(ctx context.Context, userID uuid.UUID, input *entities.TokenTransactionInput, ip, userAgent string) (*entities.Vendor, error) {
	if input.Amount <= 0 {
		return nil, domainerrors.BadRequest("token amount must be positive")
	}

	var vendor *entities.Vendor
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		v, err := u.vendorRepo.GetByUserID(txCtx, userID)
		if err != nil {
			return err
		}
		if err := u.vendorRepo.SpendTokens(txCtx, v.ID, input.Amount); err != nil {
			return err
		}
		vendor, err = u.vendorRepo.GetByID(txCtx, v.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.audit.RecordActivity(ctx, userID, entities.ActivityOther, "tokens spent", ip, userAgent, map[string]any{
		"amount": input.Amount,
		"reason": input.Reason,
	})
	return vendor, nil
}
