package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/utils"
)

// AdminHandler handles the admin account-management endpoints. Every
// route behind it is already gated on the admin account type; the
// usecases re-check against the loaded actor anyway.
type AdminHandler struct {
	accountUsecase      *usecases.AccountUsecase
	verificationUsecase *usecases.VerificationUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(accountUsecase *usecases.AccountUsecase, verificationUsecase *usecases.VerificationUsecase) *AdminHandler {
	return &AdminHandler{
		accountUsecase:      accountUsecase,
		verificationUsecase: verificationUsecase,
	}
}

func (h *AdminHandler) actor(c *gin.Context) (*entities.User, bool) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return nil, false
	}
	actor, err := h.accountUsecase.GetMe(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return actor, true
}

func pathUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid account id"))
		return uuid.Nil, false
	}
	return id, true
}

// ListUsers lists accounts with optional search
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	users, total, err := h.accountUsecase.ListUsers(c.Request.Context(), actor, c.Query("search"), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// ChangeUserType changes an account's type
// PUT /api/v1/admin/users/:id/type
func (h *AdminHandler) ChangeUserType(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var input entities.ChangeUserTypeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.accountUsecase.ChangeUserType(c.Request.Context(), actor, userID, input.UserType)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": user,
	})
}

// SetVerificationStatus transitions an account's verification status
// PUT /api/v1/admin/users/:id/verification-status
func (h *AdminHandler) SetVerificationStatus(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var input entities.SetVerificationStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.accountUsecase.SetVerificationStatus(c.Request.Context(), actor, userID, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "verification status updated",
	})
}

// UpdateTrustScore sets an account's trust score
// PUT /api/v1/admin/users/:id/trust-score
func (h *AdminHandler) UpdateTrustScore(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	var input struct {
		TrustScore float64 `json:"trustScore"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.accountUsecase.UpdateTrustScore(c.Request.Context(), actor, userID, input.TrustScore); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "trust score updated",
	})
}

// DeleteUser soft deletes an account
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}
	userID, ok := pathUserID(c)
	if !ok {
		return
	}

	if err := h.accountUsecase.DeleteUser(c.Request.Context(), actor, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "account deleted",
	})
}

// ListPendingDocuments returns the verifier queue
// GET /api/v1/admin/verification/pending
func (h *AdminHandler) ListPendingDocuments(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	docs, total, err := h.verificationUsecase.ListPending(c.Request.Context(), actor, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"documents":  docs,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// ReviewDocument records a verifier decision on a document
// PUT /api/v1/admin/verification/documents/:id
func (h *AdminHandler) ReviewDocument(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid document id"))
		return
	}

	var input entities.ReviewDocumentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	doc, err := h.verificationUsecase.ReviewDocument(c.Request.Context(), actor, docID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"document": doc,
	})
}
