package models

import (
	"time"
)

type ProductType string

const (
	ProductCourse ProductType = "course"
	ProductSignal ProductType = "signal"
	ProductBot    ProductType = "bot"
)

type Product struct {
	ID           string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name         string      `json:"name" binding:"required"`
	Description  string      `json:"description"`
	Price        float64     `json:"price" gorm:"not null"`
	Currency     string      `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	Type         ProductType `json:"type" gorm:"type:varchar(20);not null"`
	ThumbnailURL string      `json:"thumbnailUrl" gorm:"column:thumbnail_url"`
	IsActive     bool        `json:"isActive" gorm:"default:true"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
	DeletedAt    *time.Time  `json:"deletedAt,omitempty" gorm:"index"`
}

type ProductUpdate struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Currency    string   `json:"currency"`
	IsActive    *bool    `json:"isActive"`
}

func (Product) TableName() string {
	return "products"
}
