package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/domain/repositories"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/utils"
)

// VendorHandler handles vendor shop and token endpoints
type VendorHandler struct {
	vendorUsecase *usecases.VendorUsecase
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(vendorUsecase *usecases.VendorUsecase) *VendorHandler {
	return &VendorHandler{
		vendorUsecase: vendorUsecase,
	}
}

// GetMyShop returns the caller's shop profile
// GET /api/v1/vendor/shop
func (h *VendorHandler) GetMyShop(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	vendor, err := h.vendorUsecase.GetVendorByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendor":     vendor,
		"isTopRated": vendor.IsTopRated(),
	})
}

// UpdateMyShop applies a partial update to the caller's shop profile
// PATCH /api/v1/vendor/shop
func (h *VendorHandler) UpdateMyShop(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.UpdateVendorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vendor, err := h.vendorUsecase.UpdateVendor(c.Request.Context(), userID, &input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendor": vendor,
	})
}

// UploadShopLogo replaces the caller's shop logo
// POST /api/v1/vendor/shop/logo
func (h *VendorHandler) UploadShopLogo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	fileHeader, err := c.FormFile("logo")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("logo file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, domainerrors.BadRequest("logo file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("cannot read uploaded file"))
		return
	}
	defer file.Close()

	vendor, err := h.vendorUsecase.SetShopLogo(c.Request.Context(), userID, fileHeader.Filename, file, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendor": vendor,
	})
}

// GetVendor returns a single public vendor shop
// GET /api/v1/vendors/:id
func (h *VendorHandler) GetVendor(c *gin.Context) {
	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid vendor id"))
		return
	}

	vendor, err := h.vendorUsecase.GetVendor(c.Request.Context(), vendorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendor":     vendor,
		"isTopRated": vendor.IsTopRated(),
	})
}

// ListVendors returns public vendor shops matching the query filters
// GET /api/v1/vendors
func (h *VendorHandler) ListVendors(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	filter := repositories.VendorListFilter{
		Category:     entities.ShopCategory(c.Query("category")),
		FeaturedOnly: c.Query("featured") == "true",
		PremiumOnly:  c.Query("premium") == "true",
	}

	vendors, total, err := h.vendorUsecase.ListVendors(c.Request.Context(), filter, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"vendors":    vendors,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// PurchaseTokens credits tokens onto the caller's balance
// POST /api/v1/vendor/tokens/purchase
func (h *VendorHandler) PurchaseTokens(c *gin.Context) {
	h.tokenTransaction(c, "purchase", h.vendorUsecase.PurchaseTokens)
}

// SpendTokens debits tokens from the caller's balance
// POST /api/v1/vendor/tokens/spend
func (h *VendorHandler) SpendTokens(c *gin.Context) {
	h.tokenTransaction(c, "spend", h.vendorUsecase.SpendTokens)
}

func (h *VendorHandler) tokenTransaction(c *gin.Context, kind string, op func(ctx context.Context, userID uuid.UUID, input *entities.TokenTransactionInput, ip, ua string) (*entities.Vendor, error)) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.TokenTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	vendor, err := op(c.Request.Context(), userID, &input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.RecordTokenTransaction(kind)

	response.Success(c, http.StatusOK, gin.H{
		"vendor": vendor,
	})
}
