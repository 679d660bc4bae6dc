package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the storefront's gorm handle together with its connection pool.
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

// Open connects to the configured driver and verifies the connection.
// A nil gormLogger silences gorm.
func Open(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	if gormLogger == nil {
		gormLogger = logger.Discard
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres, "":
		dialector = postgres.Open(cfg.DSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            cfg.Driver != config.DriverSQLite,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Driver, err)
	}

	d, err := wrap(db)
	if err != nil {
		return nil, err
	}
	d.configurePool(cfg)

	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return d, nil
}

func wrap(db *gorm.DB) (*Database, error) {
	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}
	return &Database{DB: db, pool: pool}, nil
}

func (d *Database) configurePool(cfg *config.DatabaseConfig) {
	if cfg.Driver == config.DriverSQLite {
		// one connection keeps ":memory:" shared and avoids SQLITE_BUSY
		d.pool.SetMaxOpenConns(1)
		return
	}
	d.pool.SetMaxOpenConns(cfg.MaxOpenConns)
	d.pool.SetMaxIdleConns(cfg.MaxIdleConns)
	d.pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	d.pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)
}

// AutoMigrate builds the schema from the persistence models. Only sqlite
// runs use it; postgres schemas come from the SQL migrations.
func (d *Database) AutoMigrate() error {
	if err := d.DB.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}
	return nil
}

// Ping backs the health endpoint
func (d *Database) Ping() error {
	return d.pool.Ping()
}

func (d *Database) Close() error {
	return d.pool.Close()
}

// MaxOpenConnections reports the configured pool size
func (d *Database) MaxOpenConnections() int {
	return d.pool.Stats().MaxOpenConnections
}
