package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

const (
	otpLength = 6
	otpTTL    = 10 * time.Minute
)

func generateCode() (string, error) {
	var b strings.Builder
	for i := 0; i < otpLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String(), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// POST /auth/request-otp
func RequestOTPHandler(db *gorm.DB, sender CodeSender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		code, err := generateCode()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate code"})
			return
		}

		// Resend replaces any outstanding code for the email.
		if err := db.Where("email = ?", email).Delete(&models.OtpSession{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset previous code"})
			return
		}

		session := models.OtpSession{
			Email:     email,
			CodeHash:  hashCode(code),
			ExpiresAt: time.Now().Add(otpTTL),
		}
		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create login session"})
			return
		}

		if err := sender.Send(c.Request.Context(), email, code); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send OTP"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":    "OTP sent",
			"expires_at": session.ExpiresAt,
		})
	}
}

// POST /auth/verify-otp
func VerifyOTPHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email" binding:"required,email"`
			Code  string `json:"code" binding:"required"`
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and code are required"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		code := strings.TrimSpace(req.Code)

		if len(code) != otpLength {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter the 6-digit code"})
			return
		}

		var session models.OtpSession
		err := db.Where("email = ?", email).Order("created_at DESC").First(&session).Error
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No pending login for this email"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		if time.Now().After(session.ExpiresAt) {
			db.Delete(&session)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Code expired, request a new one"})
			return
		}
		if hashCode(code) != session.CodeHash {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid code"})
			return
		}

		// One shot: the code is consumed whether or not user creation
		// succeeds afterwards.
		db.Where("email = ?", email).Delete(&models.OtpSession{})

		user, err := upsertUser(db, email, req.Name, req.Phone)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"user":    user,
			"token":   issueJWT(user.Email, "user", user.ID, user.Name),
		})
	}
}

// upsertUser fetches or creates the account and its cart.
func upsertUser(db *gorm.DB, email, name, phone string) (*models.User, error) {
	var user models.User
	err := db.Preload("Cart.Items").Where("email = ?", email).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		userID := uuid.NewString()
		user = models.User{
			ID:    userID,
			Email: email,
			Name:  name,
			Phone: phone,
			Cart:  models.Cart{UserID: userID},
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		return &user, nil
	} else if err != nil {
		return nil, err
	}

	updates := models.User{}
	if name != "" {
		updates.Name = name
	}
	if phone != "" {
		updates.Phone = phone
	}
	if updates.Name != "" || updates.Phone != "" {
		db.Model(&user).Updates(updates)
	}
	return &user, nil
}
