package models

import (
	"time"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
	OrderRefunded   OrderStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
)

type Order struct {
	ID            string        `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string        `json:"userId" gorm:"type:uuid;not null;index"`
	ProductID     string        `json:"productId" gorm:"type:uuid;not null"`
	ProductType   ProductType   `json:"productType" gorm:"type:varchar(20)"`
	Amount        float64       `json:"amount" gorm:"not null"`
	Currency      string        `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	Status        OrderStatus   `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaymentMethod PaymentMethod `json:"paymentMethod" gorm:"type:varchar(20)"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}
