package payments

import (
	"os"

	"logictraders-backend/db"
	"logictraders-backend/models"
	"logictraders-backend/utils"
	mailsmodels "logictraders-backend/utils/mails-models"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/customer"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

// ensureStripeCustomer makes sure the user has a live Stripe customer and
// caches its id on the user row.
func ensureStripeCustomer(user *models.User) error {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if user.StripeCustomerId != "" {
		// The stored customer may have been deleted on the Stripe side
		_, err := customer.Get(user.StripeCustomerId, nil)
		if err != nil {
			user.StripeCustomerId = ""
		}
	}
	if user.StripeCustomerId == "" {
		custParams := &stripe.CustomerParams{
			Email: stripe.String(user.Email),
			Name:  stripe.String(user.UserName),
		}
		cust, err := customer.New(custParams)
		if err != nil {
			return err
		}
		db.DB.Model(user).Update("stripe_customer_id", cust.ID)
		user.StripeCustomerId = cust.ID
	}
	return nil
}

func markOrderFailed(orderID string) {
	if err := db.DB.Model(&models.Order{}).Where("id = ?", orderID).Update("status", models.OrderFailed).Error; err != nil {
		utils.LogError(err, "Error marking the order as failed")
	}
}

// recordPendingPayment writes the initial payment row after the provider
// accepted the request. A failure here is logged, not fatal: verification
// upserts the row again from the provider reference.
func recordPendingPayment(order *models.Order, provider models.PaymentProvider, providerPaymentID string, metadata datatypes.JSON) {
	payment := models.Payment{
		OrderID:           order.ID,
		UserID:            order.UserID,
		Amount:            order.Amount,
		Currency:          order.Currency,
		Provider:          provider,
		ProviderPaymentID: providerPaymentID,
		Status:            models.PaymentPending,
		Metadata:          metadata,
	}
	if err := db.DB.Create(&payment).Error; err != nil {
		utils.LogErrorWithUser(order.UserID, err, "Error creating the payment record")
	}
}

// applyPaidOrder runs the completion path once a provider confirmed the
// funds: order to completed, the order's pending payment completed in
// place, access upserted. The payment fallback upsert is keyed on
// provider_payment_id and the access upsert on (user_id, product_id), so
// replays and concurrent verifications collapse to a single row.
func applyPaidOrder(order *models.Order, provider models.PaymentProvider, providerPaymentID string) {
	if err := db.DB.Model(order).Update("status", models.OrderCompleted).Error; err != nil {
		utils.LogErrorWithUser(order.UserID, err, "Error completing the order")
	}

	// The pending row recorded at initiation may carry an earlier provider
	// reference (Checkout records the session id, the paid session resolves
	// to a PaymentIntent id). Re-key that row instead of inserting a second
	// one; when nothing is pending the upsert below handles the replay.
	rekey := db.DB.Model(&models.Payment{}).
		Where("order_id = ? AND status = ?", order.ID, models.PaymentPending).
		Updates(map[string]interface{}{
			"provider_payment_id": providerPaymentID,
			"status":              models.PaymentCompleted,
		})
	if rekey.Error != nil {
		utils.LogErrorWithUser(order.UserID, rekey.Error, "Error completing the pending payment record")
	}

	if rekey.RowsAffected == 0 {
		payment := models.Payment{
			OrderID:           order.ID,
			UserID:            order.UserID,
			Amount:            order.Amount,
			Currency:          order.Currency,
			Provider:          provider,
			ProviderPaymentID: providerPaymentID,
			Status:            models.PaymentCompleted,
		}
		err := db.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider_payment_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"status": models.PaymentCompleted}),
		}).Create(&payment).Error
		if err != nil {
			utils.LogErrorWithUser(order.UserID, err, "Error upserting the payment record")
		}
	}

	access := models.UserAccess{
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		ProductType: order.ProductType,
		IsActive:    true,
		GrantedBy:   models.GrantedByPayment,
		OrderID:     order.ID,
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"is_active": true,
			"order_id":  order.ID,
		}),
	}).Create(&access).Error
	if err != nil {
		utils.LogErrorWithUser(order.UserID, err, "Error upserting the access record")
	}
}

// sendPurchaseConfirmation mails the buyer, best effort.
func sendPurchaseConfirmation(order *models.Order) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", order.UserID).Error; err != nil {
		utils.LogErrorWithUser(order.UserID, err, "Error fetching the user for the purchase confirmation mail")
		return
	}
	var product models.Product
	if err := db.DB.First(&product, "id = ?", order.ProductID).Error; err != nil {
		utils.LogErrorWithUser(order.UserID, err, "Error fetching the product for the purchase confirmation mail")
		return
	}
	go mailsmodels.PurchaseConfirmation(user.Email, product.Name, order.Amount, order.Currency)
}
