package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/auth"
)

// SetupAuthRoutes registers all “/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	sender := auth.NewWebhookSender()

	authGroup := r.Group("/auth")
	{
		// Email OTP login
		authGroup.POST("/request-otp", auth.RequestOTPHandler(db, sender))
		authGroup.POST("/verify-otp", auth.VerifyOTPHandler(db))
	}
}
