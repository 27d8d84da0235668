package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/cart"
	checkoutControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/checkout"
	orderControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/order"
	productControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/product"
	userControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/user"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/middleware"
)

// SetupUserRoutes registers all “/user/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	checkoutManager := checkoutControllers.NewManager(db)

	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken)
	{
		// ──────────────── User Profile ────────────────
		userGroup.GET("/", userControllers.GetUser(db))    // GET /user/
		userGroup.PUT("/", userControllers.UpdateUser(db)) // PUT /user/

		// ──────────────── Shopping Cart ────────────────
		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("/", cartControllers.GetUserCart(db))                  // GET /user/cart
			cartGroup.POST("/", cartControllers.UpdateCartItem(db))              // POST /user/cart
			cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItem(db)) // DELETE /user/cart/:product_id
			cartGroup.DELETE("/", cartControllers.ClearUserCart(db))             // DELETE /user/cart
		}

		// ──────────────── Browse Products ────────────────
		userGroup.GET("/products", productControllers.GetProducts(db))        // GET /user/products
		userGroup.GET("/products/:id", productControllers.GetProductByID(db)) // GET /user/products/:id

		// ──────────────── Browse Categories + Products ────────────────
		userGroup.GET("/categories", productControllers.GetAllCategoriesWithProducts(db)) // GET /user/categories

		// ──────────────── Checkout ────────────────
		checkoutGroup := userGroup.Group("/checkout")
		{
			checkoutGroup.POST("/", checkoutManager.Start)                       // POST /user/checkout
			checkoutGroup.GET("/", checkoutManager.State)                        // GET /user/checkout
			checkoutGroup.PUT("/address", checkoutManager.UpdateAddress)         // PUT /user/checkout/address
			checkoutGroup.POST("/next", checkoutManager.Next)                    // POST /user/checkout/next
			checkoutGroup.POST("/back", checkoutManager.Back)                    // POST /user/checkout/back
			checkoutGroup.PUT("/payment-method", checkoutManager.SelectMethod)   // PUT /user/checkout/payment-method
			checkoutGroup.POST("/cod-modal", checkoutManager.CODModal)           // POST /user/checkout/cod-modal
			checkoutGroup.POST("/confirm", checkoutManager.Confirm)              // POST /user/checkout/confirm
		}

		// ──────────────── Order History ────────────────
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(db)) // GET /user/orders
	}
}
