// Package db owns the database lifecycle: opening the configured driver,
// bringing the schema up to date and optionally seeding sample profiles.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-profiles/internal/config"
)

// Connect opens the configured database handle. SQLite is the default and
// needs no running service; postgres connections are retried because the
// database container may still be starting.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	if cfg.Driver == "postgres" {
		return connectPostgres(cfg, gcfg)
	}

	conn, err := gorm.Open(sqlite.Open(cfg.Path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.Path, err)
	}
	return conn, nil
}

func connectPostgres(cfg config.DatabaseConfig, gcfg *gorm.Config) (*gorm.DB, error) {
	dsn := postgresDSN(cfg)
	log.Println("[db] connecting:", maskDSN(dsn))

	var conn *gorm.DB
	var err error
	for i := 0; i < 10; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			break
		}
		log.Println("[db] retrying connection:", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after retries: %w", err)
	}

	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping: %w", pingErr)
	}
	return conn, nil
}

// postgresDSN prefers an explicit DATABASE_DSN over the per-part settings.
func postgresDSN(cfg config.DatabaseConfig) string {
	if env := GetNormalizedDSN(); env != "" {
		return env
	}
	return cfg.DSN()
}
