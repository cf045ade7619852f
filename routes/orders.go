package routes

import (
	"logictraders-backend/handlers/orders"
	"logictraders-backend/middleware"

	"github.com/gin-gonic/gin"
)

func OrdersRoutes(r *gin.Engine) {
	orderRoutes := r.Group("/orders")
	orderRoutes.Use(middleware.JWTAuth())
	{
		orderRoutes.GET("/", orders.GetMyOrders)
		orderRoutes.GET("/:orderId", orders.GetOrderDetail)
	}
}
