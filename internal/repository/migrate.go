package repository

import "gorm.io/gorm"

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&itemModel{},
		&bookingModel{},
		&commentModel{},
	)
}
