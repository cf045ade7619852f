package routes

import (
	"logictraders-backend/handlers/auth"
	"logictraders-backend/handlers/ping"

	"github.com/gin-gonic/gin"
)

func AuthRoutes(r *gin.Engine) {
	pingHandler := ping.New()
	r.GET("/ping", pingHandler.HandlePing)

	r.POST("/register", auth.Register)
	r.POST("/login", auth.Login)
}
