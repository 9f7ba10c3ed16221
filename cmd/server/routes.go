package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"comphub.backend/internal/interfaces/http/handlers"
	"comphub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	profileHandler      *handlers.ProfileHandler
	vendorHandler       *handlers.VendorHandler
	verificationHandler *handlers.VerificationHandler
	activityHandler     *handlers.ActivityHandler
	adminHandler        *handlers.AdminHandler
	authMiddleware      gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "comphub-backend",
			"version": "0.1.0",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public, with protected self-service endpoints)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authMiddleware, d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.POST("/change-password", d.authMiddleware, d.authHandler.ChangePassword)
		}

		// Profile routes (protected)
		profile := v1.Group("/profile")
		profile.Use(d.authMiddleware)
		{
			profile.GET("", d.profileHandler.GetProfile)
			profile.PATCH("", d.profileHandler.UpdateProfile)
			profile.POST("/image", d.profileHandler.UploadProfileImage)
		}

		// Public vendor directory
		v1.GET("/vendors", d.vendorHandler.ListVendors)
		v1.GET("/vendors/:id", d.vendorHandler.GetVendor)

		// Vendor shop routes (protected, vendor only)
		vendor := v1.Group("/vendor")
		vendor.Use(d.authMiddleware, middleware.RequireVendor())
		{
			vendor.GET("/shop", d.vendorHandler.GetMyShop)
			vendor.PATCH("/shop", d.vendorHandler.UpdateMyShop)
			vendor.POST("/shop/logo", d.vendorHandler.UploadShopLogo)
			vendor.POST("/tokens/purchase", d.vendorHandler.PurchaseTokens)
			vendor.POST("/tokens/spend", d.vendorHandler.SpendTokens)
		}

		// Verification routes (protected)
		verification := v1.Group("/verification")
		verification.Use(d.authMiddleware)
		{
			verification.POST("/documents", d.verificationHandler.SubmitDocument)
			verification.GET("/documents", d.verificationHandler.ListMyDocuments)
		}

		// Activity routes (protected)
		activity := v1.Group("/activity")
		activity.Use(d.authMiddleware)
		{
			activity.GET("", d.activityHandler.ListMyActivities)
			activity.GET("/logins", d.activityHandler.ListMyLoginHistory)
		}

		// Admin routes (protected, admin only)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/type", d.adminHandler.ChangeUserType)
			admin.PUT("/users/:id/verification-status", d.adminHandler.SetVerificationStatus)
			admin.PUT("/users/:id/trust-score", d.adminHandler.UpdateTrustScore)
			admin.DELETE("/users/:id", d.adminHandler.DeleteUser)

			admin.GET("/verification/pending", d.adminHandler.ListPendingDocuments)
			admin.PUT("/verification/documents/:id", d.adminHandler.ReviewDocument)
		}
	}
}
