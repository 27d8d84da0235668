package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

// GET /admin/dashboard — the console's headline counts.
func Dashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var productCount, categoryCount, orderCount, userCount int64

		if err := db.Model(&models.Product{}).Count(&productCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		if err := db.Model(&models.Category{}).Count(&categoryCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count categories"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&orderCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":   productCount,
			"categories": categoryCount,
			"orders":     orderCount,
			"users":      userCount,
		})
	}
}
