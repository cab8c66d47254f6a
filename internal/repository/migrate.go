package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this package owns. Postgres
// deployments additionally apply the constraints under migrations/, which
// GORM cannot express.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&locationModel{},
		&spaceModel{},
		&profileModel{},
		&bookingModel{},
		&paymentModel{},
		&statusChangeModel{},
	)
}
