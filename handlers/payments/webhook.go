package payments

import (
	"encoding/json"
	"io"
	"net/http"
	"os"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Impossible to read the request body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret not configured"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stripe signature verification failed"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "payment_intent.succeeded":
		handlePaymentIntentSucceeded(c, event)
	case "payment_intent.payment_failed":
		handlePaymentIntentFailed(c, event)
	case "charge.refunded":
		handleChargeRefunded(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Event ignored"})
	}
}

func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing CheckoutSession"})
		return
	}

	if s.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		c.JSON(http.StatusOK, gin.H{"message": "Session not paid yet"})
		return
	}

	metaUserID := s.Metadata["user_id"]
	metaProductID := s.Metadata["product_id"]
	if metaUserID == "" || metaProductID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing metadata on the session"})
		return
	}

	orderID := s.Metadata["order_id"]
	if orderID == "" {
		orderID = s.ClientReferenceID
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ? AND user_id = ? AND product_id = ?", orderID, metaUserID, metaProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this session"})
		return
	}

	if order.Status == models.OrderCompleted {
		c.JSON(http.StatusOK, gin.H{"message": "Order already completed"})
		return
	}

	providerPaymentID := s.ID
	if s.PaymentIntent != nil {
		providerPaymentID = s.PaymentIntent.ID
	}

	applyPaidOrder(&order, models.ProviderStripe, providerPaymentID)
	sendPurchaseConfirmation(&order)

	c.JSON(http.StatusOK, gin.H{"message": "Order completed via checkout.session.completed"})
}

func handlePaymentIntentSucceeded(c *gin.Context, event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing PaymentIntent"})
		return
	}

	if pi.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PaymentIntent without ID"})
		return
	}

	orderID := pi.Metadata["order_id"]
	if orderID == "" {
		// Checkout-created intents carry no metadata of ours, the
		// session event completes those orders
		c.JSON(http.StatusOK, gin.H{"message": "PaymentIntent without order metadata, ignored"})
		return
	}

	var order models.Order
	if err := db.DB.First(&order, "id = ?", orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found for this PaymentIntent"})
		return
	}

	if order.Status == models.OrderCompleted {
		c.JSON(http.StatusOK, gin.H{"message": "Order already completed"})
		return
	}

	applyPaidOrder(&order, models.ProviderStripe, pi.ID)
	sendPurchaseConfirmation(&order)

	c.JSON(http.StatusOK, gin.H{"message": "Order completed via payment_intent.succeeded"})
}

func handlePaymentIntentFailed(c *gin.Context, event stripe.Event) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing failed PaymentIntent"})
		return
	}

	orderID := pi.Metadata["order_id"]
	if orderID == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Failed PaymentIntent without order metadata"})
		return
	}

	markOrderFailed(orderID)
	if err := db.DB.Model(&models.Payment{}).
		Where("provider_payment_id = ?", pi.ID).
		Update("status", models.PaymentFailed).Error; err != nil {
		utils.LogError(err, "Error marking the payment as failed in handlePaymentIntentFailed")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order marked failed via payment_intent.payment_failed"})
}

func handleChargeRefunded(c *gin.Context, event stripe.Event) {
	var charge stripe.Charge
	if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error parsing Charge"})
		return
	}

	if charge.PaymentIntent == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Refunded charge without PaymentIntent"})
		return
	}

	var payment models.Payment
	if err := db.DB.First(&payment, "provider_payment_id = ?", charge.PaymentIntent.ID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"message": "No payment record for this charge"})
		return
	}

	if err := db.DB.Model(&payment).Update("status", models.PaymentRefunded).Error; err != nil {
		utils.LogError(err, "Error marking the payment as refunded in handleChargeRefunded")
	}
	if err := db.DB.Model(&models.Order{}).
		Where("id = ?", payment.OrderID).
		Update("status", models.OrderRefunded).Error; err != nil {
		utils.LogError(err, "Error marking the order as refunded in handleChargeRefunded")
	}
	if err := db.DB.Model(&models.UserAccess{}).
		Where("user_id = ? AND order_id = ?", payment.UserID, payment.OrderID).
		Update("is_active", false).Error; err != nil {
		utils.LogError(err, "Error revoking the access in handleChargeRefunded")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment refunded and access revoked"})
}
