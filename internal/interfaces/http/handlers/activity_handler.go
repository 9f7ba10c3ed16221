package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/utils"
)

// ActivityHandler exposes the caller's own audit trail
type ActivityHandler struct {
	audit *usecases.AuditRecorder
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(audit *usecases.AuditRecorder) *ActivityHandler {
	return &ActivityHandler{audit: audit}
}

// ListMyActivities returns the caller's activity feed, newest first
// GET /api/v1/activity
func (h *ActivityHandler) ListMyActivities(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	activities, total, err := h.audit.ListUserActivities(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"activities": activities,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// ListMyLoginHistory returns the caller's login attempts, newest first
// GET /api/v1/activity/logins
func (h *ActivityHandler) ListMyLoginHistory(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	params := utils.GetPaginationParams(page, limit)

	attempts, total, err := h.audit.ListLoginHistory(c.Request.Context(), userID, params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"loginAttempts": attempts,
		"pagination":    utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
