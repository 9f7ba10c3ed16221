package repositories

import (
	"context"

	"comphub.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// VendorListFilter narrows vendor listings
type VendorListFilter struct {
	Category     entities.ShopCategory
	FeaturedOnly bool
	PremiumOnly  bool
}

// VendorRepository defines vendor profile data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entities.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Vendor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Vendor, error)
	Update(ctx context.Context, vendor *entities.Vendor) error
	List(ctx context.Context, filter VendorListFilter, limit, offset int) ([]*entities.Vendor, int64, error)

	// AddPurchasedTokens credits the balance and the purchased counter in a
	// single guarded statement so concurrent transactions cannot lose updates.
	AddPurchasedTokens(ctx context.Context, id uuid.UUID, amount int64) error
	// SpendTokens debits the balance and credits the used counter; it fails
	// with ErrInsufficientTokens when the balance would go negative.
	SpendTokens(ctx context.Context, id uuid.UUID, amount int64) error
}
