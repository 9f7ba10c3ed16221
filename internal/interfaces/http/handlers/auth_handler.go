package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comphub.backend/internal/domain/entities"
	domainerrors "comphub.backend/internal/domain/errors"
	"comphub.backend/internal/interfaces/http/middleware"
	"comphub.backend/internal/interfaces/http/response"
	"comphub.backend/internal/usecases"
	"comphub.backend/pkg/redis"
)

const sessionTTL = 24 * time.Hour

// AuthHandler handles registration and authentication endpoints
type AuthHandler struct {
	accountUsecase *usecases.AccountUsecase
	sessionStore   *redis.SessionStore
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountUsecase *usecases.AccountUsecase, sessionStore *redis.SessionStore) *AuthHandler {
	return &AuthHandler{
		accountUsecase: accountUsecase,
		sessionStore:   sessionStore,
	}
}

// Register handles account registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.CreateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.accountUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.RecordRegistration(string(user.UserType))

	response.Success(c, http.StatusCreated, gin.H{
		"user": user,
	})
}

// Login handles authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.accountUsecase.Login(c.Request.Context(), &input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		response.Error(c, err)
		return
	}

	if input.UseSession && h.sessionStore != nil {
		sessionID := uuid.New().String()
		err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, &redis.SessionData{
			AccessToken:  authResponse.AccessToken,
			RefreshToken: authResponse.RefreshToken,
		}, sessionTTL)
		if err != nil {
			response.Error(c, domainerrors.InternalError(err))
			return
		}
		c.SetCookie("session_id", sessionID, int(sessionTTL.Seconds()), "/", "", false, true)

		// Tokens live server-side only in session mode.
		response.Success(c, http.StatusOK, gin.H{
			"sessionId": sessionID,
			"user":      authResponse.User,
		})
		return
	}

	c.SetCookie("token", authResponse.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie("refresh_token", authResponse.RefreshToken, 3600*24*7, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  authResponse.AccessToken,
		"refreshToken": authResponse.RefreshToken,
		"user":         authResponse.User,
	})
}

// Logout tears down the caller's session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	if sessionID, err := c.Cookie("session_id"); err == nil && h.sessionStore != nil {
		_ = h.sessionStore.DeleteSession(c.Request.Context(), sessionID)
		c.SetCookie("session_id", "", -1, "/", "", false, true)
	}
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)

	h.accountUsecase.Logout(c.Request.Context(), userID, c.ClientIP(), c.Request.UserAgent())

	response.Success(c, http.StatusOK, gin.H{
		"message": "logged out",
	})
}

// RefreshToken exchanges a refresh token for a fresh pair
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var refreshToken string

	if c.Request.ContentLength > 0 {
		var input struct {
			RefreshToken string `json:"refreshToken"`
		}
		if err := c.ShouldBindJSON(&input); err == nil {
			refreshToken = input.RefreshToken
		}
	}

	if refreshToken == "" {
		if cookie, err := c.Cookie("refresh_token"); err == nil {
			refreshToken = cookie
		}
	}

	if refreshToken == "" {
		response.Error(c, domainerrors.BadRequest("refresh token is required"))
		return
	}

	tokenPair, err := h.accountUsecase.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("token", tokenPair.AccessToken, 3600*24, "/", "", false, true)
	c.SetCookie("refresh_token", tokenPair.RefreshToken, 3600*24*7, "/", "", false, true)

	response.Success(c, http.StatusOK, gin.H{
		"accessToken":  tokenPair.AccessToken,
		"refreshToken": tokenPair.RefreshToken,
	})
}

// GetMe returns the authenticated account
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	user, err := h.accountUsecase.GetMe(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":    user,
		"canSell": user.CanSell(),
	})
}

// ChangePassword replaces the caller's password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("unauthorized"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.accountUsecase.ChangePassword(c.Request.Context(), userID, &input, c.ClientIP(), c.Request.UserAgent()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "password changed",
	})
}
