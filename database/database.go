package database

import (
	"Vaulted/internal/config"
	"Vaulted/internal/models"
	"fmt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"log"
	"os"
)

func SetupDatabase(cfg *config.Configuration) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "sqlite":
		path := cfg.Database.Path
		if path == "" {
			path = "vaulted.db"
		}
		dialector = sqlite.Open(path)
	default:
		var envVariables = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TZ"}
		for _, envVariable := range envVariables {
			if os.Getenv(envVariable) == "" && envVariable != "DB_SSLMODE" {
				return nil, fmt.Errorf("%s environment variable not set", envVariable)
			}
			if envVariable == "DB_SSLMODE" && os.Getenv(envVariable) == "" {
				err := os.Setenv("DB_SSLMODE", "disable")
				if err != nil {
					return nil, err
				}
			}
		}
		dsn := os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}")
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(models.Node{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
