package db

import (
	"errors"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/diewo77/go-profiles/internal/config"
	"github.com/diewo77/go-profiles/internal/store"
)

// Migrate brings the schema up to date. With MIGRATIONS=1 the SQL files
// under ./migrations run through golang-migrate (postgres only); otherwise
// the store's AutoMigrate path is used, which is the sqlite/dev default.
// Either way the users table must exist afterwards.
func Migrate(conn *gorm.DB, cfg *config.Config) error {
	if cfg.App.Migrations && cfg.Database.Driver == "postgres" {
		if err := runSQLMigrations(migrateURL(cfg.Database)); err != nil {
			return fmt.Errorf("sql migrations: %w", err)
		}
	} else {
		if cfg.App.Migrations {
			log.Println("[db] sql migrations need postgres; falling back to automigrate")
		}
		if err := store.NewUserStore(conn).Migrate(); err != nil {
			return fmt.Errorf("automigrate users: %w", err)
		}
	}

	if !conn.Migrator().HasTable("users") {
		return errors.New("missing table after migration: users")
	}
	return nil
}

// migrateURL builds the URL-form DSN golang-migrate requires.
func migrateURL(cfg config.DatabaseConfig) string {
	if env := GetNormalizedDSN(); env != "" {
		return ToURLDSN(env)
	}
	return cfg.URL()
}

// runSQLMigrations executes migrations in ./migrations using the golang-migrate file source.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	log.Println("[db] sql migrations applied")
	return nil
}
