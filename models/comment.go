package models

import "gorm.io/gorm"

// Comment is authored by exactly one of UserID / FoodPartnerID.
type Comment struct {
	gorm.Model
	FoodID        uint   `gorm:"not null;index:idx_comment_food_created,priority:1"`
	UserID        *uint  `gorm:"index"`
	FoodPartnerID *uint  `gorm:"index"`
	Text          string `gorm:"size:500;not null"`
	LikeCount     int64  `gorm:"not null;default:0"`
}
