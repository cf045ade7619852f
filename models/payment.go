package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentProvider string

const (
	ProviderStripe  PaymentProvider = "stripe"
	ProviderMtnMomo PaymentProvider = "mtn_momo"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	OrderID           string          `json:"orderId" gorm:"type:uuid;not null;index"`
	UserID            string          `json:"userId" gorm:"type:uuid;not null"`
	Amount            float64         `json:"amount" gorm:"not null"`
	Currency          string          `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	Provider          PaymentProvider `json:"provider" gorm:"type:varchar(20);not null"`
	ProviderPaymentID string          `json:"providerPaymentId" gorm:"column:provider_payment_id;uniqueIndex"`
	Status            PaymentStatus   `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Metadata          datatypes.JSON  `json:"metadata,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (Payment) TableName() string {
	return "payments"
}
