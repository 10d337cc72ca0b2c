// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Profile  ProfileConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig selects the SQL driver and its connection settings.
// SQLite needs only Path; the remaining fields describe PostgreSQL.
type DatabaseConfig struct {
	Driver   string // "sqlite" or "postgres"
	Path     string // sqlite database file
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ProfileConfig carries the validation bounds and the variant switch.
// WithAuth selects the account-based variant (passwords, sessions,
// timestamps); without it the app is an open profile directory.
type ProfileConfig struct {
	WithAuth    bool
	UsernameMin int
	UsernameMax int
	FullNameMin int
	FullNameMax int
	EmailMax    int
	AgeMin      int
	AgeMax      int
	BioMax      int
	PasswordMin int
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool
	Migrations bool
	Seed       bool
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultProfile returns the stock bounds for a variant. The two variants
// ship different username and age windows; everything else matches.
func DefaultProfile(withAuth bool) ProfileConfig {
	p := ProfileConfig{
		WithAuth:    withAuth,
		UsernameMin: 3,
		UsernameMax: 30,
		FullNameMin: 2,
		FullNameMax: 100,
		EmailMax:    120,
		AgeMin:      0,
		AgeMax:      120,
		BioMax:      500,
		PasswordMin: 6,
	}
	if withAuth {
		p.UsernameMax = 20
		p.AgeMin = 1
		p.AgeMax = 150
	}
	return p
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	profile := DefaultProfile(getEnvBool("WITH_AUTH", true))
	profile.UsernameMin = getEnvInt("USERNAME_MIN", profile.UsernameMin)
	profile.UsernameMax = getEnvInt("USERNAME_MAX", profile.UsernameMax)
	profile.FullNameMin = getEnvInt("FULL_NAME_MIN", profile.FullNameMin)
	profile.FullNameMax = getEnvInt("FULL_NAME_MAX", profile.FullNameMax)
	profile.EmailMax = getEnvInt("EMAIL_MAX", profile.EmailMax)
	profile.AgeMin = getEnvInt("AGE_MIN", profile.AgeMin)
	profile.AgeMax = getEnvInt("AGE_MAX", profile.AgeMax)
	profile.BioMax = getEnvInt("BIO_MAX", profile.BioMax)
	profile.PasswordMin = getEnvInt("PASSWORD_MIN", profile.PasswordMin)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "sqlite"),
			Path:     getEnv("DB_PATH", "profiles.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "profiles"),
			Password: getEnv("DB_PASSWORD", "profiles123"),
			DBName:   getEnv("DB_NAME", "profiles"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Profile: profile,
		App: AppConfig{
			Dev:        getEnvBool("DEV", true),
			Migrations: getEnvBool("MIGRATIONS", false),
			Seed:       getEnvBool("DB_SEED", false),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
