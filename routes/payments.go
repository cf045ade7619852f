package routes

import (
	"logictraders-backend/handlers/payments"
	"logictraders-backend/middleware"

	"github.com/gin-gonic/gin"
)

func PaymentsRoutes(r *gin.Engine) {
	paymentRoutes := r.Group("/payments")
	paymentRoutes.Use(middleware.JWTAuth())
	{
		paymentRoutes.POST("/intent", payments.CreatePaymentIntent)
		paymentRoutes.POST("/checkout", payments.CreateCheckoutSession)
		paymentRoutes.POST("/momo", payments.InitiateMomoPayment)
		paymentRoutes.POST("/momo/verify", payments.VerifyMomoPayment)
		paymentRoutes.POST("/verify", payments.VerifyCheckoutSession)
	}
	r.POST("/stripe/webhook", payments.StripeWebhookHandler)
}
