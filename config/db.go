package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nrj111/foodgram-backend/models"
)

// NewDB opens the postgres connection and migrates the schema.
// TranslateError turns driver unique-violation errors into
// gorm.ErrDuplicatedKey, which the storage layer depends on.
func NewDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.FoodPartner{},
		&models.Food{},
		&models.Engagement{},
		&models.Comment{},
		&models.CommentLike{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return db, nil
}
