package main

import (
	"flag"
	"os"

	"guestlist/cmd/migration/initialize"
	"guestlist/cmd/migration/seed"
	"guestlist/config"
	"guestlist/internal/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	log := logger.New("migration")

	withSeed := flag.Bool("seed", false, "seed development data after migrating")
	flag.Parse()

	cfg, err := config.InitConfig()
	if err != nil {
		log.Er("failed to load config", err)
		os.Exit(1)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseDbPath), &gorm.Config{})
	if err != nil {
		log.Er("failed to open database", err, "dbPath", cfg.DatabaseDbPath)
		os.Exit(1)
	}

	if err := initialize.InitializeTables(db, cfg, log); err != nil {
		os.Exit(1)
	}

	if *withSeed {
		if err := seed.Seed(db, cfg, log); err != nil {
			os.Exit(1)
		}
	}

	log.Info("migration complete")
}
