package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

type ProductInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	OriginalPrice float64 `json:"original_price"`
	SellingPrice  float64 `json:"selling_price" binding:"required"`
	ImageURL      string  `json:"image_url"`
	Stock         int     `json:"stock"`
	CategoryID    *uint   `json:"category_id"`
}

// CreateProduct creates a new catalog product.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, "id = ?", *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
		}

		product := models.Product{
			Name:          input.Name,
			Description:   input.Description,
			OriginalPrice: input.OriginalPrice,
			SellingPrice:  input.SellingPrice,
			ImageURL:      input.ImageURL,
			Stock:         input.Stock,
			CategoryID:    input.CategoryID,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
