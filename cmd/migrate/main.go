// Command migrate manages the storefront's postgres schema.
package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/migration"
	"github.com/storefront/backend/migrations"
	"go.uber.org/zap"
)

const defaultMigrationsDir = "migrations"

// invocation is one parsed command line
type invocation struct {
	args []string
	dir  string
	log  *zap.Logger
}

// intArg parses args[i], or returns fallback when it is absent and fallback is non-nil
func (inv invocation) intArg(i int, name string, fallback *int) (int, error) {
	if i >= len(inv.args) {
		if fallback != nil {
			return *fallback, nil
		}
		return 0, fmt.Errorf("missing <%s>", name)
	}
	n, err := strconv.Atoi(inv.args[i])
	if err != nil {
		return 0, fmt.Errorf("<%s> must be a number, got %q", name, inv.args[i])
	}
	return n, nil
}

// fileCommand works on migration files and needs no database
type fileCommand func(inv invocation) error

// dbCommand runs against the configured database
type dbCommand func(m *migration.Migrator, inv invocation) error

var fileCommands = map[string]fileCommand{
	"create": createMigration,
	"list":   listMigrations,
}

var dbCommands = map[string]dbCommand{
	"up":      func(m *migration.Migrator, _ invocation) error { return m.Up() },
	"down":    migrateDown,
	"steps":   migrateSteps,
	"goto":    migrateTo,
	"force":   forceVersion,
	"version": showVersion,
	"drop":    dropAll,
}

func main() {
	dir := flag.String("path", "", "Read migrations from this directory instead of the embedded set")
	level := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout", TimeFormat: "15:04:05"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	name := flag.Arg(0)
	inv := invocation{args: flag.Args()[1:], dir: *dir, log: log}

	if cmd, ok := fileCommands[name]; ok {
		if err := cmd(inv); err != nil {
			log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
		}
		return
	}
	cmd, ok := dbCommands[name]
	if !ok {
		usage()
		log.Fatal("Unknown command", zap.String("command", name))
	}
	if err := runAgainstDatabase(cmd, inv); err != nil {
		log.Fatal("Migration command failed", zap.String("command", name), zap.Error(err))
	}
}

func runAgainstDatabase(cmd dbCommand, inv invocation) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres; %s databases are created with AutoMigrate", cfg.Database.Driver)
	}

	src := migration.FromFS(migrations.FS)
	if inv.dir != "" {
		abs, err := filepath.Abs(inv.dir)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", inv.dir, err)
		}
		src = migration.FromDir(abs)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	m, err := migration.New(db, src, inv.log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return cmd(m, inv)
}

func createMigration(inv invocation) error {
	if len(inv.args) == 0 {
		return errors.New("usage: migrate create <name> [description]")
	}
	dir := inv.dir
	if dir == "" {
		dir = defaultMigrationsDir
	}
	var description string
	if len(inv.args) > 1 {
		description = inv.args[1]
	}

	mf, err := migration.CreateMigration(dir, inv.args[0], description)
	if err != nil {
		return err
	}
	inv.log.Info("Migration created",
		zap.String("version", mf.Version),
		zap.String("up_file", mf.UpPath),
		zap.String("down_file", mf.DownPath))
	return nil
}

func listMigrations(inv invocation) error {
	var fsys fs.FS = migrations.FS
	if inv.dir != "" {
		fsys = os.DirFS(inv.dir)
	}
	names, err := migration.ListMigrations(fsys)
	if err != nil {
		return err
	}
	if unpaired, err := migration.Unpaired(fsys); err == nil && len(unpaired) > 0 {
		inv.log.Warn("Migrations without a matching up/down file", zap.Strings("files", unpaired))
	}
	inv.log.Info("Available migrations", zap.Int("count", len(names)))
	for _, name := range names {
		fmt.Println("  -", name)
	}
	return nil
}

func migrateDown(m *migration.Migrator, inv invocation) error {
	all := 0
	n, err := inv.intArg(0, "n", &all)
	if err != nil {
		return err
	}
	return m.Down(n)
}

func migrateSteps(m *migration.Migrator, inv invocation) error {
	n, err := inv.intArg(0, "n", nil)
	if err != nil {
		return err
	}
	return m.Steps(n)
}

func migrateTo(m *migration.Migrator, inv invocation) error {
	v, err := inv.intArg(0, "version", nil)
	if err != nil {
		return err
	}
	if v < 0 {
		return errors.New("<version> must not be negative")
	}
	return m.GoTo(uint(v))
}

func forceVersion(m *migration.Migrator, inv invocation) error {
	v, err := inv.intArg(0, "version", nil)
	if err != nil {
		return err
	}
	return m.Force(v)
}

// dropAll needs -confirm since it removes every table and the migration history
func dropAll(m *migration.Migrator, inv invocation) error {
	if len(inv.args) == 0 || (inv.args[0] != "-confirm" && inv.args[0] != "--confirm") {
		return errors.New("drop cancelled, use 'migrate drop -confirm'")
	}
	return m.Drop()
}

func showVersion(m *migration.Migrator, inv invocation) error {
	version, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		inv.log.Info("No migrations applied")
		return nil
	}
	inv.log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func usage() {
	fmt.Fprint(flag.CommandLine.Output(), `Storefront schema migrations

Usage: migrate [flags] <command> [arguments]

Commands against the configured postgres database:
  up                    apply every pending migration
  down [n]              roll back n migrations, all when n is omitted
  steps <n>             move n migrations, negative n goes down
  goto <version>        migrate up or down to version
  version               print the applied version
  force <version>       record version without running it, clears a dirty state
  drop -confirm         drop every object in the database

Commands on migration files:
  create <name> [desc]  add an up/down pair to -path (default ./migrations)
  list                  list the migrations in -path or the embedded set

The database is configured like the server, through config.toml or
SHOP_DATABASE_* variables.

Flags:
`)
	flag.PrintDefaults()
}
