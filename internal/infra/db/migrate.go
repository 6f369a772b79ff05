package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/kargofit/crm/internal/config"
	"github.com/kargofit/crm/internal/domain/model"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Models lists every table owned by the application.
func Models() []interface{} {
	return []interface{}{
		&model.Bike{},
		&model.Product{},
		&model.Customer{},
		&model.Order{},
		&model.OrderItem{},
	}
}

// Migrate applies the schema: SQL migrations when cfg.Migrations is set,
// gorm AutoMigrate otherwise.
func Migrate(conn *gorm.DB, cfg config.Config) error {
	if cfg.Migrations {
		return runSQLMigrations(cfg.MigrateURL())
	}
	return AutoMigrate(conn)
}

func AutoMigrate(conn *gorm.DB) error {
	for _, m := range Models() {
		if err := conn.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

func runSQLMigrations(databaseURL string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sql migrations failed: %w", err)
	}
	return nil
}
