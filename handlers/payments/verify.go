package payments

import (
	"net/http"
	"os"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
)

type VerifyRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// VerifyCheckoutSession re-fetches a Checkout Session from Stripe as the
// source of truth and, when paid, completes the order and grants access.
// Safe to call several times for the same session.
// @Summary Verify a Stripe Checkout session and grant access
// @Description Re-fetch the Checkout session from Stripe. If the payment is confirmed, complete the order, record the payment and grant product access. Idempotent by session.
// @Tags payments
// @Accept json
// @Produce json
// @Param verification body VerifyRequest true "Checkout session id"
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "success: true, message: Access granted"
// @Failure 400 {object} map[string]string "error: Payment not completed or missing metadata"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Session or order not found"
// @Router /payments/verify [post]
func VerifyCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in VerifyCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	s, err := session.Get(req.SessionID, nil)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Session not found in VerifyCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not completed"})
		return
	}

	// The session metadata is the sole linkage back to our records
	metaUserID := s.Metadata["user_id"]
	metaProductID := s.Metadata["product_id"]
	if metaUserID == "" || metaProductID == "" {
		utils.LogErrorWithUser(userID, nil, "Missing metadata on the session in VerifyCheckoutSession")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing metadata on the session"})
		return
	}

	orderID := s.Metadata["order_id"]
	if orderID == "" {
		orderID = s.ClientReferenceID
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ? AND user_id = ? AND product_id = ?", orderID, metaUserID, metaProductID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Order not found in VerifyCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	providerPaymentID := s.ID
	if s.PaymentIntent != nil {
		providerPaymentID = s.PaymentIntent.ID
	}

	alreadyCompleted := order.Status == models.OrderCompleted

	applyPaidOrder(&order, models.ProviderStripe, providerPaymentID)

	if !alreadyCompleted {
		sendPurchaseConfirmation(&order)
	}

	utils.LogSuccessWithUser(userID, "Payment verified and access granted in VerifyCheckoutSession")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Access granted",
	})
}
