package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `gorm:"not null"`
	Email    string `gorm:"uniqueIndex;not null"`
	Password string `gorm:"not null" json:"-"`
}

// FoodPartner is a business account. It is a separate principal kind,
// not a role on User: the two live in different tables and carry
// different tokens.
type FoodPartner struct {
	gorm.Model
	Name        string `gorm:"not null"`
	ContactName string `gorm:"not null"`
	Phone       string `gorm:"not null"`
	Address     string `gorm:"not null"`
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null" json:"-"`
}
