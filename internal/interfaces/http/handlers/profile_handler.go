package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
)

// maxUploadBytes caps profile image and document uploads at 10 MiB
const maxUploadBytes = 10 << 20

// ProfileHandler handles profile endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{
		profileUsecase: profileUsecase,
	}
}

// GetProfile returns the caller's profile
// GET /api/v1/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	profile, err := h.profileUsecase.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
	})
}

// UpdateProfile applies a partial update to the caller's profile
// PATCH /api/v1/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.UpdateProfile(c.Request.Context(), userID, &input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
	})
}

// UploadProfileImage replaces the caller's profile image
// POST /api/v1/profile/image
func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("image file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, domainerrors.BadRequest("image file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("cannot read uploaded file"))
		return
	}
	defer file.Close()

	profile, err := h.profileUsecase.SetProfileImage(c.Request.Context(), userID, fileHeader.Filename, file, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"profile": profile,
	})
}
