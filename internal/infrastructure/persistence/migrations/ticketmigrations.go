package migrations

import (
	"gorm.io/gorm"

	"github.com/visitra-hq/visitra/internal/infrastructure/persistence/models"
)

func MigrateTicketTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TicketModel{},
		&models.CommentModel{},
		&models.AttachmentModel{},
	)
}

func MigrateUserTables(db *gorm.DB) error {
	return db.AutoMigrate(&models.UserModel{})
}

// MigrateAll runs every table migration in dependency order.
func MigrateAll(db *gorm.DB) error {
	if err := MigrateUserTables(db); err != nil {
		return err
	}
	return MigrateTicketTables(db)
}
