package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/admin"
	cartControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/cart"
	productcontroller "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/product"
	userControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/user"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Dashboard & User Management ───────────
		adminGroup.GET("/dashboard", adminController.Dashboard(db))
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Payment QR ───────────
		qrMgmt := adminGroup.Group("/payment-qr")
		{
			qrMgmt.POST("/upload", adminController.UploadPaymentQR(db))
			qrMgmt.GET("/", adminController.GetPaymentQR(db))
		}

		cartMgmt := adminGroup.Group("/user-cart")
		{
			cartMgmt.GET("/:user_id", cartControllers.GetAdminUserCart(db))
		}
	}
}
