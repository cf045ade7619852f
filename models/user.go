package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	AdminRole Role = "ADMIN"
	UserRole  Role = "USER"
)

type User struct {
	ID               string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email            string       `json:"email" gorm:"uniqueIndex" binding:"required,email"`
	Password         string       `json:"-" binding:"required,min=6"`
	UserName         string       `json:"username"`
	Role             Role         `json:"role" gorm:"type:varchar(20);default:'USER'"`
	StripeCustomerId string       `json:"stripeCustomerId"`
	Enable           bool         `json:"enable" gorm:"default:true"`
	EmailVerifiedAt  sql.NullTime `json:"emailVerifiedAt"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

type UserCreate struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	UserName string `json:"username"`
}

type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (User) TableName() string {
	return "users"
}
