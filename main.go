package main

import (
	"log"

	"logictraders-backend/db"
	_ "logictraders-backend/docs"
	"logictraders-backend/routes"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
)

// @title API LogicTraders Backend
// @version 1.0
// @description API for the LogicTraders trading-education storefront
// @host localhost:8080
// @BasePath /
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {

	gin.SetMode(gin.ReleaseMode)

	db.InitDB()

	if err := utils.InitCloudinary(); err != nil {
		log.Printf("Warning: Cloudinary initialization failed: %v", err)
		log.Println("Product thumbnail upload will not work properly.")
	}

	if !utils.MomoConfigured() {
		log.Println("Warning: MoMo credentials missing, mobile money payments will not work.")
	}

	r := routes.SetupRouter()

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
