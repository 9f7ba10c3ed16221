package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
)

// VerificationHandler handles KYC document endpoints
type VerificationHandler struct {
	verificationUsecase *usecases.VerificationUsecase
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verificationUsecase *usecases.VerificationUsecase) *VerificationHandler {
	return &VerificationHandler{
		verificationUsecase: verificationUsecase,
	}
}

// SubmitDocument accepts a KYC document upload with its metadata as
// multipart form fields
// POST /api/v1/verification/documents
func (h *VerificationHandler) SubmitDocument(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	input := entities.SubmitDocumentInput{
		DocumentType:   entities.DocumentType(c.PostForm("documentType")),
		DocumentNumber: c.PostForm("documentNumber"),
		IsPrimary:      c.PostForm("isPrimary") == "true",
	}
	if raw := c.PostForm("expiryDate"); raw != "" {
		expiry, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("expiryDate must be RFC 3339"))
			return
		}
		input.ExpiryDate = &expiry
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.Error(c, domainerrors.BadRequest("document file is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.Error(c, domainerrors.BadRequest("document file too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("cannot read uploaded file"))
		return
	}
	defer file.Close()

	doc, err := h.verificationUsecase.SubmitDocument(c.Request.Context(), userID, &input, fileHeader.Filename, file, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"document": doc,
	})
}

// ListMyDocuments returns the caller's submitted documents
// GET /api/v1/verification/documents
func (h *VerificationHandler) ListMyDocuments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	docs, err := h.verificationUsecase.ListUserDocuments(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"documents": docs,
	})
}
