// Package integration runs the storefront against a real PostgreSQL started with
// testcontainers. The schema comes from the embedded SQL migrations.
package integration

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/storefront/backend/migrations"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

// pgInstance is the one container the package's tests share
type pgInstance struct {
	once      sync.Once
	container *tcpostgres.PostgresContainer
	cfg       config.DatabaseConfig
	err       error
}

var pg pgInstance

// TestDB is a connection to the migrated shared database
type TestDB struct {
	DB *gorm.DB
	t  *testing.T
}

// boot starts postgres and applies the migrations through the same migrator cmd/migrate uses
func (p *pgInstance) boot(t *testing.T) {
	ctx := context.Background()
	p.cfg = config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		User:         "postgres",
		Password:     "storefront",
		DBName:       "storefront_test",
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	p.container, p.err = tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase(p.cfg.DBName),
		tcpostgres.WithUsername(p.cfg.User),
		tcpostgres.WithPassword(p.cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute)),
	)
	if p.err != nil {
		p.err = fmt.Errorf("start postgres: %w", p.err)
		return
	}

	host, err := p.container.Host(ctx)
	if err != nil {
		p.err = fmt.Errorf("container host: %w", err)
		return
	}
	port, err := p.container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		p.err = fmt.Errorf("container port: %w", err)
		return
	}
	p.cfg.Host = host
	p.cfg.Port, _ = strconv.Atoi(port.Port())

	m, err := migration.NewFromURL(p.cfg.DSN(), migration.FromFS(migrations.FS), zaptest.NewLogger(t))
	if err != nil {
		p.err = fmt.Errorf("migrator: %w", err)
		return
	}
	defer func() { _ = m.Close() }()
	if err := m.Up(); err != nil {
		p.err = fmt.Errorf("migrate up: %w", err)
	}
}

// NewSharedTestDB opens a connection to the package's postgres container,
// starting and migrating it on first use. Tests call CleanTables for isolation.
func NewSharedTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("integration tests need docker, skipped with -short")
	}

	pg.once.Do(func() { pg.boot(t) })
	require.NoError(t, pg.err)

	db, err := persistence.Open(&pg.cfg, nil)
	require.NoError(t, err, "connect to test database")
	t.Cleanup(func() { _ = db.Close() })
	return &TestDB{DB: db.DB, t: t}
}

// CleanTables empties every storefront table and restarts the id sequences
func (tdb *TestDB) CleanTables() {
	tdb.t.Helper()

	var tables []string
	require.NoError(tdb.t, tdb.DB.
		Table("pg_tables").
		Where("schemaname = ? AND tablename <> ?", "public", "schema_migrations").
		Pluck("tablename", &tables).Error)

	for _, table := range tables {
		require.NoError(tdb.t, tdb.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %q RESTART IDENTITY CASCADE", table)).Error,
			"truncate %s", table)
	}
}

// CleanupSharedContainer stops the container; TestMain calls it after m.Run.
func CleanupSharedContainer() {
	if pg.container == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	_ = pg.container.Terminate(ctx)
}
