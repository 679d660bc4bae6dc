// Package migration runs the versioned SQL schema migrations with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Source is a directory of NNNNNN_name.up.sql / .down.sql pairs
type Source struct {
	fsys fs.FS
	name string
}

// FromFS reads migrations from fsys, typically the embedded migrations.FS.
func FromFS(fsys fs.FS) Source { return Source{fsys: fsys, name: "embedded"} }

// FromDir reads migrations from a directory on disk.
func FromDir(dir string) Source { return Source{fsys: os.DirFS(dir), name: dir} }

// Migrator moves a postgres schema between migration versions
type Migrator struct {
	migrate *migrate.Migrate
	log     *zap.Logger
}

// New migrates the database behind an open connection
func New(db *sql.DB, src Source, log *zap.Logger) (*Migrator, error) {
	target, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}
	return open(src, log, func(files source.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithInstance("iofs", files, "postgres", target)
	})
}

// NewFromURL migrates the database at a postgres:// URL
func NewFromURL(databaseURL string, src Source, log *zap.Logger) (*Migrator, error) {
	return open(src, log, func(files source.Driver) (*migrate.Migrate, error) {
		return migrate.NewWithSourceInstance("iofs", files, databaseURL)
	})
}

func open(src Source, log *zap.Logger, connect func(source.Driver) (*migrate.Migrate, error)) (*Migrator, error) {
	files, err := iofs.New(src.fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("open migration source %s: %w", src.name, err)
	}
	m, err := connect(files)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{migrate: m, log: log.With(zap.String("migration_source", src.name))}, nil
}

// apply runs op and logs the resulting version. Nothing to do is not an error.
func (m *Migrator) apply(op string, fn func() error) error {
	err := fn()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		m.log.Info("Schema already up to date", zap.String("op", op))
		return nil
	case err != nil:
		return fmt.Errorf("migrate %s: %w", op, err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info("Migration finished", zap.String("op", op), zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// Up applies every pending migration
func (m *Migrator) Up() error {
	return m.apply("up", m.migrate.Up)
}

// Down rolls back n migrations, or all of them when n <= 0
func (m *Migrator) Down(n int) error {
	if n > 0 {
		return m.Steps(-n)
	}
	return m.apply("down", m.migrate.Down)
}

// Steps moves n migrations up, or down when n is negative
func (m *Migrator) Steps(n int) error {
	return m.apply(fmt.Sprintf("steps %d", n), func() error { return m.migrate.Steps(n) })
}

// GoTo migrates up or down to version
func (m *Migrator) GoTo(version uint) error {
	return m.apply(fmt.Sprintf("goto %d", version), func() error { return m.migrate.Migrate(version) })
}

// Version is the applied version; 0 means an empty schema
func (m *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = m.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read migration version: %w", err)
	}
	return version, dirty, nil
}

// Force records version as applied without running anything, clearing a
// dirty flag left by a failed migration that was repaired by hand.
func (m *Migrator) Force(version int) error {
	m.log.Warn("Forcing migration version", zap.Int("version", version))
	if err := m.migrate.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

// Drop removes every object in the database, migration history included
func (m *Migrator) Drop() error {
	m.log.Warn("Dropping every database object")
	if err := m.migrate.Drop(); err != nil {
		return fmt.Errorf("drop database: %w", err)
	}
	return nil
}

func (m *Migrator) Close() error {
	sourceErr, dbErr := m.migrate.Close()
	return errors.Join(sourceErr, dbErr)
}
