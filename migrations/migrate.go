package migrations

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"room-rental-server/models"
)

// Migrate keeps the schema in sync with the model definitions.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Room{},
		&models.Roommate{},
		&models.Payment{},
		&models.ReferralDetail{},
		&models.Grievance{},
		&models.VacateRequest{},
		&models.OwnerDetail{},
	)
	if err != nil {
		return err
	}
	logrus.Info("Database migration completed")
	return nil
}
