package routes

import (
	"logictraders-backend/handlers/access"
	"logictraders-backend/middleware"

	"github.com/gin-gonic/gin"
)

func AccessRoutes(r *gin.Engine) {
	accessRoutes := r.Group("/access")
	accessRoutes.Use(middleware.JWTAuth())
	{
		accessRoutes.GET("/", access.GetMyAccess)
		accessRoutes.GET("/:productId", access.CheckAccess)
	}
}
