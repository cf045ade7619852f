package payments

import (
	"encoding/json"
	"net/http"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MomoRequest struct {
	ProductID   string `json:"productId" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type MomoVerifyRequest struct {
	ReferenceID string `json:"referenceId" binding:"required"`
}

// InitiateMomoPayment starts an MTN MoMo push payment for a product. The
// payer approves the prompt on their phone; the returned reference id is
// used to verify the payment afterwards.
// @Summary Start an MTN MoMo push payment for a product purchase
// @Description Create a pending order and request a MoMo push payment on the given phone number. Returns the provider reference id.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body MomoRequest true "Product and payer phone number"
// @Security BearerAuth
// @Success 200 {object} map[string]string "referenceId: MoMo reference id, orderId: order ID"
// @Failure 400 {object} map[string]string "error: Validation or provider error"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /payments/momo [post]
func InitiateMomoPayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in InitiateMomoPayment")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MomoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	if !utils.ValidateMomoPhone(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format, expected 07XXXXXXXX or +2567XXXXXXXX"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ? AND is_active = ?", req.ProductID, true).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Product not found in InitiateMomoPayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var existingAccess models.UserAccess
	if err := db.DB.Where("user_id = ? AND product_id = ? AND is_active = ?", userID, product.ID, true).
		First(&existingAccess).Error; err == nil {
		utils.LogErrorWithUser(userID, nil, "Already has access in InitiateMomoPayment")
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have access to this product"})
		return
	}

	var buyer models.User
	if err := db.DB.First(&buyer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in InitiateMomoPayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	order := models.Order{
		UserID:        buyer.ID,
		ProductID:     product.ID,
		ProductType:   product.Type,
		Amount:        product.Price,
		Currency:      product.Currency,
		Status:        models.OrderPending,
		PaymentMethod: models.PaymentMethodMobileMoney,
	}
	if err := db.DB.Create(&order).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the order in InitiateMomoPayment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the order"})
		return
	}

	referenceID := uuid.New().String()
	msisdn := utils.NormalizeMsisdn(req.PhoneNumber)

	err := utils.RequestMomoPayment(referenceID, order.Amount, order.Currency, order.ID, msisdn, "LogicTraders purchase: "+product.Name)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "MoMo requesttopay failed in InitiateMomoPayment")
		markOrderFailed(order.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	metadata, _ := json.Marshal(map[string]string{"phoneNumber": req.PhoneNumber})
	recordPendingPayment(&order, models.ProviderMtnMomo, referenceID, metadata)

	if err := db.DB.Model(&order).Update("status", models.OrderProcessing).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error advancing the order to processing in InitiateMomoPayment")
	}

	utils.LogSuccessWithUser(userID, "MoMo payment requested successfully in InitiateMomoPayment")
	c.JSON(http.StatusOK, gin.H{
		"referenceId": referenceID,
		"orderId":     order.ID,
	})
}

// VerifyMomoPayment polls the MoMo transaction status for a reference id
// and, when the provider reports SUCCESSFUL, completes the order and
// grants access. PENDING leaves all records untouched.
// @Summary Verify an MTN MoMo payment and grant access
// @Description Fetch the authoritative transaction status from MoMo. SUCCESSFUL completes the order and grants access, PENDING mutates nothing, FAILED marks the order failed.
// @Tags payments
// @Accept json
// @Produce json
// @Param verification body MomoVerifyRequest true "MoMo reference id"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "success: true, message: Access granted"
// @Success 202 {object} map[string]interface{} "success: false, status: PENDING"
// @Failure 400 {object} map[string]string "error: Provider error or payment failed"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Payment or order not found"
// @Router /payments/momo/verify [post]
func VerifyMomoPayment(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in VerifyMomoPayment")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MomoVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	status, err := utils.GetMomoTransactionStatus(req.ReferenceID)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "MoMo status check failed in VerifyMomoPayment")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var payment models.Payment
	if err := db.DB.First(&payment, "provider_payment_id = ?", req.ReferenceID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Payment not found in VerifyMomoPayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ?", payment.OrderID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Order not found in VerifyMomoPayment")
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	switch status.Status {
	case utils.MomoStatusSuccessful:
		alreadyCompleted := order.Status == models.OrderCompleted
		applyPaidOrder(&order, models.ProviderMtnMomo, req.ReferenceID)
		if !alreadyCompleted {
			sendPurchaseConfirmation(&order)
		}
		utils.LogSuccessWithUser(userID, "MoMo payment verified and access granted in VerifyMomoPayment")
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Access granted",
		})
	case utils.MomoStatusFailed:
		markOrderFailed(order.ID)
		if err := db.DB.Model(&payment).Update("status", models.PaymentFailed).Error; err != nil {
			utils.LogErrorWithUser(userID, err, "Error marking the payment as failed in VerifyMomoPayment")
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment failed: " + status.Reason})
	default:
		c.JSON(http.StatusAccepted, gin.H{
			"success": false,
			"status":  status.Status,
			"message": "Payment not yet approved",
		})
	}
}
