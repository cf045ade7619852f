package models

import (
	"time"
)

type GrantSource string

const (
	GrantedByPayment      GrantSource = "payment"
	GrantedByManual       GrantSource = "manual"
	GrantedBySubscription GrantSource = "subscription"
)

// UserAccess holds the usage rights of a user on a product. At most one
// row per (user_id, product_id); re-grants flip IsActive instead of
// inserting a second row.
type UserAccess struct {
	ID          string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID      string      `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_user_product"`
	ProductID   string      `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_user_product"`
	ProductType ProductType `json:"productType" gorm:"type:varchar(20)"`
	IsActive    bool        `json:"isActive" gorm:"default:true"`
	GrantedBy   GrantSource `json:"grantedBy" gorm:"type:varchar(20);default:'payment'"`
	OrderID     string      `json:"orderId" gorm:"type:uuid"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func (UserAccess) TableName() string {
	return "user_access"
}
