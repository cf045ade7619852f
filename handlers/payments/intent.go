package payments

import (
	"math"
	"net/http"
	"os"
	"strings"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

type IntentRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Currency  string `json:"currency"`
}

// CreatePaymentIntent starts a card payment for a product and returns the
// PaymentIntent client secret to confirm on the frontend.
// @Summary Create a Stripe PaymentIntent for a product purchase
// @Description Create a pending order and a Stripe PaymentIntent for the given product. Returns the client secret to confirm the payment on the frontend.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body IntentRequest true "Product to purchase"
// @Security BearerAuth
// @Success 200 {object} map[string]string "clientSecret: PaymentIntent client secret, orderId: order ID"
// @Failure 400 {object} map[string]string "error: Validation or provider error"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /payments/intent [post]
func CreatePaymentIntent(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreatePaymentIntent")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req IntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ? AND is_active = ?", req.ProductID, true).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Product not found in CreatePaymentIntent")
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// The amount is the product price in the product currency, a different
	// requested currency would relabel it
	if req.Currency != "" && !strings.EqualFold(req.Currency, product.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency does not match the product currency"})
		return
	}

	var existingAccess models.UserAccess
	if err := db.DB.Where("user_id = ? AND product_id = ? AND is_active = ?", userID, product.ID, true).
		First(&existingAccess).Error; err == nil {
		utils.LogErrorWithUser(userID, nil, "Already has access in CreatePaymentIntent")
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have access to this product"})
		return
	}

	var buyer models.User
	if err := db.DB.First(&buyer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreatePaymentIntent")
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
		PaymentMethod: models.PaymentMethodCard,
	}
	if err := db.DB.Create(&order).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the order in CreatePaymentIntent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the order"})
		return
	}

	if err := ensureStripeCustomer(&buyer); err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreatePaymentIntent")
		markOrderFailed(order.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(order.Amount * 100))),
		Currency: stripe.String(strings.ToLower(product.Currency)),
		Customer: stripe.String(buyer.StripeCustomerId),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("user_id", buyer.ID)
	params.AddMetadata("product_id", product.ID)
	params.AddMetadata("order_id", order.ID)

	pi, err := paymentintent.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the PaymentIntent in CreatePaymentIntent")
		markOrderFailed(order.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordPendingPayment(&order, models.ProviderStripe, pi.ID, nil)

	if err := db.DB.Model(&order).Update("status", models.OrderProcessing).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error advancing the order to processing in CreatePaymentIntent")
	}

	utils.LogSuccessWithUser(userID, "PaymentIntent created successfully in CreatePaymentIntent")
	c.JSON(http.StatusOK, gin.H{
		"clientSecret": pi.ClientSecret,
		"orderId":      order.ID,
	})
}
