package adminController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

func uploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// UploadPaymentQR stores the UPI QR image the checkout widget shows.
// The newest upload becomes the active payment target.
func UploadPaymentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}

		saveDir := filepath.Join(uploadDir(), "qr")
		if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		filename := fmt.Sprintf("%d_%s", time.Now().Unix(), strings.ReplaceAll(fileHeader.Filename, " ", "_"))
		savePath := filepath.Join(saveDir, filename)

		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		fileURL := fmt.Sprintf("/uploads/qr/%s", filename)
		qr, err := models.SavePaymentQR(db, filename, fileURL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment QR uploaded", "data": qr})
	}
}

// GetPaymentQR returns the active QR image reference.
func GetPaymentQR(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		qr, err := models.LatestPaymentQR(db)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "No payment QR uploaded yet"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payment QR"})
			return
		}
		c.JSON(http.StatusOK, qr)
	}
}
