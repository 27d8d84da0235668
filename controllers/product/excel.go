package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/rulerankit14/flipmart-new-year-winter-sale/models"
)

// Column layout: ID, Name, Description, OriginalPrice, SellingPrice,
// Stock, ImageURL, CategoryID. Rows with an existing ID update in
// place; the rest insert.
func ImportProductsFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			idStr := get(0)
			name := get(1)
			description := get(2)
			originalPrice, _ := strconv.ParseFloat(get(3), 64)
			sellingPrice, priceErr := strconv.ParseFloat(get(4), 64)
			stock, _ := strconv.Atoi(get(5))
			imageURL := get(6)
			categoryIDStr := get(7)

			if name == "" || priceErr != nil {
				skippedCount++
				continue
			}

			var categoryID *uint
			if categoryIDStr != "" {
				if id, err := strconv.Atoi(categoryIDStr); err == nil {
					cid := uint(id)
					categoryID = &cid
				}
			}

			product := models.Product{
				Name:          name,
				Description:   description,
				OriginalPrice: originalPrice,
				SellingPrice:  sellingPrice,
				Stock:         stock,
				ImageURL:      imageURL,
				CategoryID:    categoryID,
			}

			if idStr != "" {
				if id, err := strconv.Atoi(idStr); err == nil {
					var existing models.Product
					if err := db.First(&existing, id).Error; err == nil {
						existing.Name = product.Name
						existing.Description = product.Description
						existing.OriginalPrice = product.OriginalPrice
						existing.SellingPrice = product.SellingPrice
						existing.Stock = product.Stock
						existing.ImageURL = product.ImageURL
						existing.CategoryID = product.CategoryID

						if err := db.Save(&existing).Error; err == nil {
							updatedCount++
							continue
						}
					}
				}
			}

			// Insert new product
			if err := db.Create(&product).Error; err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
