package models

import "gorm.io/gorm"

// Food is owned by exactly one FoodPartner. LikeCount, SavesCount and
// CommentsCount are denormalized caches over the engagement and comment
// tables; they are adjusted atomically in the database and clamped at zero.
type Food struct {
	gorm.Model
	Name          string  `gorm:"not null"`
	Description   string
	Price         float64 `gorm:"not null"`
	MediaURL      string
	FoodPartnerID uint    `gorm:"index;not null"`
	LikeCount     int64   `gorm:"not null;default:0"`
	SavesCount    int64   `gorm:"not null;default:0"`
	CommentsCount int64   `gorm:"not null;default:0"`
}
