package access

import (
	"errors"
	"net/http"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyAccess lists the active product access of the connected user.
// @Summary List the user's product access
// @Description Return all the active access rows of the connected user
// @Tags access
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.UserAccess
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /access [get]
func GetMyAccess(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMyAccess")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var accessRows []models.UserAccess
	err := db.DB.Where("user_id = ? AND is_active = ?", userID, true).Order("created_at DESC").Find(&accessRows).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching access rows in GetMyAccess")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching access"})
		return
	}

	c.JSON(http.StatusOK, accessRows)
}

// CheckAccess reports whether the connected user holds active access to a
// product. Existence check only, no expiry logic.
// @Summary Check access to a product
// @Description Return whether the connected user has active access to the given product
// @Tags access
// @Accept json
// @Produce json
// @Param productId path string true "ID of the product"
// @Security BearerAuth
// @Success 200 {object} map[string]bool "hasAccess: whether the user has access"
// @Failure 400 {object} map[string]string "error: Invalid product ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /access/{productId} [get]
func CheckAccess(c *gin.Context) {
	productID := c.Param("productId")

	if _, err := uuid.Parse(productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CheckAccess")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var existing models.UserAccess
	err := db.DB.Where("user_id = ? AND product_id = ? AND is_active = ?", userID, productID, true).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogErrorWithUser(userID, err, "Error checking the access in CheckAccess")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hasAccess": err == nil,
	})
}
