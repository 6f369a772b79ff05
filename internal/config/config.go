package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Config is the application-wide configuration.
type Config struct {
	Port  string // server port (8080)
	GoEnv string // development/production

	DatabaseURL      string // takes precedence over the POSTGRES_* keys
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	DBDebug    bool // gorm SQL logging
	Migrations bool // golang-migrate instead of AutoMigrate

	UploadDir       string // staging directory for CSV uploads
	CatalogDir      string // brands.json / category.json
	UploadBodyLimit string // echo BodyLimit, e.g. "10M"
	LogLevel        string
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "development"),

		DatabaseURL:      strings.TrimSpace(os.Getenv("DATABASE_URL")),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		DBDebug:    isTruthy(os.Getenv("DB_DEBUG")),
		Migrations: isTruthy(os.Getenv("MIGRATIONS")),

		UploadDir:       getenv("UPLOAD_DIR", "uploads"),
		CatalogDir:      getenv("CATALOG_DIR", "config"),
		UploadBodyLimit: getenv("UPLOAD_BODY_LIMIT", "10M"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL != "" {
		return cfg, nil
	}

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	// required keys
	if cfg.PostgresUser == "" {
		return Config{}, fmt.Errorf("POSTGRES_USER is required")
	}
	if cfg.PostgresPassword == "" {
		return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if cfg.PostgresDB == "" {
		return Config{}, fmt.Errorf("POSTGRES_DB is required")
	}
	if cfg.PostgresHost == "" {
		return Config{}, fmt.Errorf("POSTGRES_HOST is required")
	}

	return cfg, nil
}

// IsDevelopment reports whether GO_ENV selects the development profile.
func (c Config) IsDevelopment() bool {
	switch strings.ToLower(c.GoEnv) {
	case "", "dev", "development", "local":
		return true
	}
	return false
}

// DSN is the gorm/pgx connection string.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

// MigrateURL is the URL form golang-migrate expects.
func (c Config) MigrateURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, strconv.Itoa(c.PostgresPort)),
		Path:     "/" + c.PostgresDB,
		RawQuery: url.Values{"sslmode": []string{c.PostgresSSLMode}}.Encode(),
	}
	return u.String()
}

// Addr is the listen address derived from Port.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key string, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func atoiDefault(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
