package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/rulerankit14/flipmart-new-year-winter-sale/controllers/order"
	"github.com/rulerankit14/flipmart-new-year-winter-sale/middleware"
)

// SetupOrderRoutes registers the “/orders/*” endpoints. Orders are
// created only through checkout; this surface is read-only.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// websocket endpoint for real-time order updates
		orders.GET("/ws", orderControllers.OrderWebSocketHandler)

		// admin views (API-Key protected)
		protected := orders.Group("")
		protected.Use(middleware.ValidateAPIKey)
		{
			protected.GET("/", orderControllers.GetAllOrdersHandler(db))
			protected.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))
		}
	}
}
