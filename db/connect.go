package db

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/youssefibrahim146/Volt/confs"
	"github.com/youssefibrahim146/Volt/entities"
)

// Connect opens the Postgres connection described by cfg, configures the
// pool and runs migrations. The caller owns the returned handle and must
// Close it on shutdown.
func Connect(cfg confs.DatabaseConfig) (Database, error) {
	dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("db: open connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db: unwrap sql handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(0)

	log.Println("Database connection ready")

	log.Println("Applying schema migration...")
	if err := Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("db: migrate schema: %w", err)
	}
	log.Println("Schema migration done")

	return &GormStore{DB: gormDB}, nil
}

// buildDSN prefers a full DB_URL and falls back to the individual host
// parameters. Hosted Postgres needs SSL, a local one usually refuses it.
func buildDSN(cfg confs.DatabaseConfig) (string, error) {
	if cfg.URL != "" {
		dsn := cfg.URL
		if !strings.Contains(dsn, "sslmode=") {
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			dsn += sep + "sslmode=require"
		}
		log.Println("Connecting via DB_URL")
		return dsn, nil
	}

	if cfg.Host == "" || cfg.Port == "" || cfg.User == "" || cfg.Password == "" || cfg.Name == "" {
		return "", fmt.Errorf("db: incomplete config, set DB_URL or all of DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME")
	}

	sslMode := "require"
	if cfg.Host == "localhost" || cfg.Host == "127.0.0.1" {
		sslMode = "disable"
	}
	log.Printf("Connecting via host parameters (sslmode=%s)", sslMode)

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, sslMode), nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&entities.User{},
		&entities.Admin{},
		&entities.SystemDevice{},
		&entities.HomeDevice{},
	)
}
