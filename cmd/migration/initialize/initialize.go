package initialize

import (
	"guestlist/config"
	"guestlist/internal/database"
	"guestlist/internal/logger"

	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Applying schema migrations")

	if err := database.Migrate(db); err != nil {
		return log.Err("failed to apply migrations", err)
	}

	log.Info("Table initialization complete")
	return nil
}
