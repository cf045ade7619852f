package orders

import (
	"net/http"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMyOrders lists the orders of the connected user, newest first.
// @Summary List the user's orders
// @Description Return all the orders of the connected user
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Order
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Router /orders [get]
func GetMyOrders(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetMyOrders")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var userOrders []models.Order
	err := db.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&userOrders).Error
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error fetching orders in GetMyOrders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching orders"})
		return
	}

	c.JSON(http.StatusOK, userOrders)
}

// GetOrderDetail returns the details of one order of the connected user.
// @Summary Details of an order
// @Description Return the detailed information of an order belonging to the connected user
// @Tags orders
// @Accept json
// @Produce json
// @Param orderId path string true "ID of the order"
// @Security BearerAuth
// @Success 200 {object} models.Order
// @Failure 400 {object} map[string]string "error: Invalid order ID"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: You are not authorized to view this order"
// @Failure 404 {object} map[string]string "error: Order not found"
// @Router /orders/{orderId} [get]
func GetOrderDetail(c *gin.Context) {
	orderID := c.Param("orderId")

	if _, err := uuid.Parse(orderID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in GetOrderDetail")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ?", orderID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Order not found in GetOrderDetail")
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if order.UserID != userID {
		utils.LogErrorWithUser(userID, nil, "Not authorized to view this order in GetOrderDetail")
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to view this order"})
		return
	}

	c.JSON(http.StatusOK, order)
}
