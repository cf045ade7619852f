package products

import (
	"net/http"
	"strconv"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetAllProducts lists the active catalog, optionally filtered by type.
// @Summary List active products
// @Description Return all the active products, optionally filtered by type (course, signal, bot)
// @Tags products
// @Accept json
// @Produce json
// @Param type query string false "Product type filter"
// @Success 200 {array} models.Product
// @Failure 500 {object} map[string]string "error: Error fetching products"
// @Router /products [get]
func GetAllProducts(c *gin.Context) {
	query := db.DB.Where("is_active = ?", true)

	if productType := c.Query("type"); productType != "" {
		query = query.Where("type = ?", productType)
	}

	var productList []models.Product
	if err := query.Order("created_at DESC").Find(&productList).Error; err != nil {
		utils.LogError(err, "Error fetching products in GetAllProducts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching products"})
		return
	}

	c.JSON(http.StatusOK, productList)
}

// GetProductByID returns one active product.
// @Summary Details of a product
// @Description Return the detailed information of an active product
// @Tags products
// @Accept json
// @Produce json
// @Param productId path string true "ID of the product"
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string "error: Invalid product ID"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Router /products/{productId} [get]
func GetProductByID(c *gin.Context) {
	productID := c.Param("productId")

	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ? AND is_active = ?", productID, true).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog (admin only). Accepts
// multipart so a thumbnail can be sent along with the fields.
// @Summary Create a product
// @Description Create a new product with an optional thumbnail image (multipart form)
// @Tags products
// @Accept mpfd
// @Produce json
// @Param name formData string true "Product name"
// @Param description formData string false "Product description"
// @Param price formData number true "Product price"
// @Param currency formData string false "Currency code"
// @Param type formData string true "Product type (course, signal, bot)"
// @Param thumbnail formData file false "Thumbnail image"
// @Security BearerAuth
// @Success 201 {object} models.Product
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /products [post]
func CreateProduct(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	name := c.Request.FormValue("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	productType := models.ProductType(c.Request.FormValue("type"))
	switch productType {
	case models.ProductCourse, models.ProductSignal, models.ProductBot:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product type, expected course, signal or bot"})
		return
	}

	price, err := strconv.ParseFloat(c.Request.FormValue("price"), 64)
	if err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "The price must be a positive number"})
		return
	}

	currency := c.Request.FormValue("currency")
	if currency == "" {
		currency = "USD"
	}

	thumbnailURL := ""
	if file, err := c.FormFile("thumbnail"); err == nil && file != nil {
		uploadedURL, err := utils.UploadImage(file, "product_thumbnails", "product")
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Error uploading the thumbnail in CreateProduct")
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		thumbnailURL = uploadedURL
	}

	product := models.Product{
		Name:         name,
		Description:  c.Request.FormValue("description"),
		Price:        price,
		Currency:     currency,
		Type:         productType,
		ThumbnailURL: thumbnailURL,
		IsActive:     true,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the product in CreateProduct")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the product"})
		return
	}

	utils.LogSuccessWithUser(userID, "Product created successfully in CreateProduct")
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct modifies a product (admin only).
// @Summary Update a product
// @Description Update the fields of an existing product
// @Tags products
// @Accept json
// @Produce json
// @Param productId path string true "ID of the product"
// @Param product body models.ProductUpdate true "Fields to update"
// @Security BearerAuth
// @Success 200 {object} models.Product
// @Failure 400 {object} map[string]string "error: Invalid input"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Router /products/{productId} [put]
func UpdateProduct(c *gin.Context) {
	productID := c.Param("productId")

	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input models.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Name != "" {
		updates["name"] = input.Name
	}
	if input.Description != "" {
		updates["description"] = input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Currency != "" {
		updates["currency"] = input.Currency
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if err := db.DB.Model(&product).Updates(updates).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error updating the product in UpdateProduct")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating the product"})
		return
	}

	utils.LogSuccessWithUser(userID, "Product updated successfully in UpdateProduct")
	c.JSON(http.StatusOK, product)
}

// DeleteProduct deactivates a product (admin only). Orders and access
// rows keep pointing at it, so this is a soft removal from the catalog.
// @Summary Deactivate a product
// @Description Remove a product from the catalog without deleting its history
// @Tags products
// @Accept json
// @Produce json
// @Param productId path string true "ID of the product"
// @Security BearerAuth
// @Success 200 {object} map[string]string "message: Product deactivated successfully"
// @Failure 400 {object} map[string]string "error: Invalid product ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Admin role required"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Router /products/{productId} [delete]
func DeleteProduct(c *gin.Context) {
	productID := c.Param("productId")

	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ?", productID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := db.DB.Model(&product).Update("is_active", false).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error deactivating the product in DeleteProduct")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deactivating the product"})
		return
	}

	utils.LogSuccessWithUser(userID, "Product deactivated successfully in DeleteProduct")
	c.JSON(http.StatusOK, gin.H{"message": "Product deactivated successfully"})
}
