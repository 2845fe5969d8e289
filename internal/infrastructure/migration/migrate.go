// Package migration applies and scaffolds the SQL migrations of the sync
// store with golang-migrate.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// Migrator runs the migrations found in one source against one database.
// Closing it also closes the *sql.DB it was opened with.
type Migrator struct {
	m      *migrate.Migrate
	source fs.FS
	log    *zap.Logger
}

// Status is a database's schema version. Pending counts source
// migrations newer than Version.
type Status struct {
	Version uint `json:"version"`
	Dirty   bool `json:"dirty"`
	Pending int  `json:"pending"`
}

// Open reads migrations from the root of source: the embedded
// migrations.FS or os.DirFS of a checkout.
func Open(db *sql.DB, source fs.FS, log *zap.Logger) (*Migrator, error) {
	if log == nil {
		log = zap.NewNop()
	}
	src, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("postgres migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}

	log = log.Named("migrate")
	m.Log = migrateLogger{log}
	return &Migrator{m: m, source: source, log: log}, nil
}

// migrateLogger sends golang-migrate's progress lines to zap at debug.
type migrateLogger struct{ log *zap.Logger }

func (l migrateLogger) Printf(format string, v ...any) {
	l.log.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool { return l.log.Core().Enabled(zap.DebugLevel) }

func (m *Migrator) Up() error   { return m.apply("up", m.m.Up) }
func (m *Migrator) Down() error { return m.apply("down", m.m.Down) }

// Steps moves n migrations, up when positive and down when negative.
func (m *Migrator) Steps(n int) error {
	return m.apply(fmt.Sprintf("steps %+d", n), func() error { return m.m.Steps(n) })
}

func (m *Migrator) GoTo(version uint) error {
	return m.apply(fmt.Sprintf("goto %d", version), func() error { return m.m.Migrate(version) })
}

// apply treats "nothing to do" as success.
func (m *Migrator) apply(op string, run func() error) error {
	if err := run(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			m.log.Info("Schema already current", zap.String("operation", op))
			return nil
		}
		return fmt.Errorf("migrate %s: %w", op, err)
	}
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	m.log.Info("Schema migrated", zap.String("operation", op), zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}

// Version is 0 on a database no migration has touched.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("schema version: %w", err)
	}
	return v, dirty, nil
}

func (m *Migrator) Status() (Status, error) {
	names, err := ListMigrations(m.source)
	if err != nil {
		return Status{}, err
	}
	known, err := Versions(names)
	if err != nil {
		return Status{}, err
	}
	v, dirty, err := m.Version()
	if err != nil {
		return Status{}, err
	}
	st := Status{Version: v, Dirty: dirty}
	for _, k := range known {
		if k > v {
			st.Pending++
		}
	}
	return st, nil
}

// Force records version without running anything, to clear a dirty flag
// after a failed migration was repaired by hand.
func (m *Migrator) Force(version int) error {
	m.log.Warn("Forcing schema version", zap.Int("version", version))
	if err := m.m.Force(version); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	return nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	return errors.Join(srcErr, dbErr)
}
