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
	session "github.com/stripe/stripe-go/v82/checkout/session"
)

type CheckoutRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// CreateCheckoutSession starts a hosted Stripe Checkout payment for a
// product. Returns the session ID and URL to redirect the frontend to.
// @Summary Create a Stripe Checkout session for a product purchase
// @Description Create a pending order and a Stripe Checkout session for the given product. Returns the session ID and the Checkout URL.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body CheckoutRequest true "Product to purchase"
// @Security BearerAuth
// @Success 200 {object} map[string]string "sessionId: Checkout session ID, url: Checkout URL, orderId: order ID"
// @Failure 400 {object} map[string]string "error: Validation or provider error"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 404 {object} map[string]string "error: Product not found"
// @Failure 500 {object} map[string]string "error: Server error"
// @Router /payments/checkout [post]
func CreateCheckoutSession(c *gin.Context) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID, exists := c.Get("user_id")
	if !exists {
		utils.LogError(nil, "User not authenticated in CreateCheckoutSession")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, "id = ? AND is_active = ?", req.ProductID, true).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Product not found in CreateCheckoutSession")
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var existingAccess models.UserAccess
	if err := db.DB.Where("user_id = ? AND product_id = ? AND is_active = ?", userID, product.ID, true).
		First(&existingAccess).Error; err == nil {
		utils.LogErrorWithUser(userID, nil, "Already has access in CreateCheckoutSession")
		c.JSON(http.StatusBadRequest, gin.H{"error": "You already have access to this product"})
		return
	}

	var buyer models.User
	if err := db.DB.First(&buyer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found in CreateCheckoutSession")
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
		utils.LogErrorWithUser(userID, err, "Error creating the order in CreateCheckoutSession")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating the order"})
		return
	}

	if err := ensureStripeCustomer(&buyer); err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe customer in CreateCheckoutSession")
		markOrderFailed(order.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	successURL := os.Getenv("CHECKOUT_SUCCESS_URL")
	if successURL == "" {
		successURL = "https://logictraders.com/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	}
	cancelURL := os.Getenv("CHECKOUT_CANCEL_URL")
	if cancelURL == "" {
		cancelURL = "https://logictraders.com/checkout/cancel"
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(buyer.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(product.Currency)),
					UnitAmount: stripe.Int64(int64(math.Round(product.Price * 100))),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(product.Name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(successURL),
		CancelURL:         stripe.String(cancelURL),
		ClientReferenceID: stripe.String(order.ID),
	}
	params.AddMetadata("user_id", buyer.ID)
	params.AddMetadata("product_id", product.ID)
	params.AddMetadata("order_id", order.ID)

	s, err := session.New(params)
	if err != nil {
		utils.LogErrorWithUser(userID, err, "Error creating the Stripe session in CreateCheckoutSession")
		markOrderFailed(order.ID)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordPendingPayment(&order, models.ProviderStripe, s.ID, nil)

	if err := db.DB.Model(&order).Update("status", models.OrderProcessing).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Error advancing the order to processing in CreateCheckoutSession")
	}

	utils.LogSuccessWithUser(userID, "Checkout session created successfully in CreateCheckoutSession")
	c.JSON(http.StatusOK, gin.H{
		"sessionId": s.ID,
		"url":       s.URL,
		"orderId":   order.ID,
	})
}
