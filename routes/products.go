package routes

import (
	"logictraders-backend/handlers/products"
	"logictraders-backend/middleware"

	"github.com/gin-gonic/gin"
)

func ProductsRoutes(r *gin.Engine) {
	productRoutes := r.Group("/products")
	{
		productRoutes.GET("/", products.GetAllProducts)
		productRoutes.GET("/:productId", products.GetProductByID)
		productRoutes.POST("/", middleware.AdminAuth(), products.CreateProduct)
		productRoutes.PUT("/:productId", middleware.AdminAuth(), products.UpdateProduct)
		productRoutes.DELETE("/:productId", middleware.AdminAuth(), products.DeleteProduct)
	}
}
