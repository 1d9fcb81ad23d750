package database

import (
	"embed"

	logg "guestlist/internal/logger"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrate applies all pending schema migrations embedded in the binary.
func Migrate(db *gorm.DB) error {
	log := logg.New("database").Function("Migrate")

	sqlDB, err := db.DB()
	if err != nil {
		return log.Err("failed to get database handle", err)
	}

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}

	applied, err := migrate.Exec(sqlDB, "sqlite3", source, migrate.Up)
	if err != nil {
		return log.Err("failed to apply migrations", err)
	}

	log.Info("Migrations applied", "count", applied)
	return nil
}

func (s *DB) Migrate() error {
	return Migrate(s.SQL)
}
