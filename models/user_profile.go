package models

import (
	"time"
)

type TradingExperience string

const (
	ExperienceBeginner     TradingExperience = "BEGINNER"
	ExperienceIntermediate TradingExperience = "INTERMEDIATE"
	ExperienceAdvanced     TradingExperience = "ADVANCED"
)

type UserProfile struct {
	ID                string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID            string            `json:"userId" gorm:"type:uuid;not null;uniqueIndex"`
	FirstName         string            `json:"firstName"`
	LastName          string            `json:"lastName"`
	Country           string            `json:"country"`
	PhoneNumber       string            `json:"phoneNumber"`
	TradingExperience TradingExperience `json:"tradingExperience" gorm:"type:varchar(20);default:'BEGINNER'"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

type UserProfileUpdate struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Country           string `json:"country"`
	PhoneNumber       string `json:"phoneNumber"`
	TradingExperience string `json:"tradingExperience"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
