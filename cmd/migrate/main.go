// Command migrate manages the sync store schema.
//
//	migrate up
//	migrate --path ./migrations create add_sync_runs "track sync runs"
package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/catalogsync/backend/internal/infrastructure/config"
	"github.com/catalogsync/backend/internal/infrastructure/logger"
	"github.com/catalogsync/backend/internal/infrastructure/migration"
	"github.com/catalogsync/backend/migrations"
)

const usage = `Usage: migrate [flags] <command> [args]

Commands:
  up                    apply pending migrations
  down                  roll back every migration
  step <n>              move n migrations (negative rolls back)
  goto <version>        migrate to version
  status                show version, dirty flag and pending count
  force <version>       set version without running migrations
  create <name> [desc]  scaffold an up/down pair (needs --path)
  list                  list migrations in the source

Flags:
`

// dbCommand runs against an open migrator. args excludes the command name.
type dbCommand func(m *migration.Migrator, args []string, log *zap.Logger) error

var dbCommands = map[string]dbCommand{
	"up":   func(m *migration.Migrator, _ []string, _ *zap.Logger) error { return m.Up() },
	"down": func(m *migration.Migrator, _ []string, _ *zap.Logger) error { return m.Down() },
	"step": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)
	},
	"goto": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(v))
	},
	"force": func(m *migration.Migrator, args []string, _ *zap.Logger) error {
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(v)
	},
	"status": func(m *migration.Migrator, _ []string, log *zap.Logger) error {
		st, err := m.Status()
		if err != nil {
			return err
		}
		log.Info("Schema status",
			zap.Uint("version", st.Version),
			zap.Bool("dirty", st.Dirty),
			zap.Int("pending", st.Pending),
		)
		return nil
	},
}

func main() {
	flags := pflag.NewFlagSet("migrate", pflag.ExitOnError)
	dir := flags.String("path", "", "migrations directory (default: embedded in the binary)")
	configPath := flags.StringP("config", "c", "", "config file (default: search ., /etc/catsync, /app)")
	level := flags.String("log-level", "info", "debug, info, warn or error")
	flags.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flags.PrintDefaults()
	}
	_ = flags.Parse(os.Args[1:])

	args := flags.Args()
	if len(args) == 0 {
		flags.Usage()
		os.Exit(2)
	}
	command, rest := args[0], args[1:]
	if command == "version" {
		command = "status"
	}

	log, err := logger.New(&logger.Config{Level: *level, Format: "console", Output: "stdout", TimeFormat: "15:04:05"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var source fs.FS = migrations.FS
	if *dir != "" {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			log.Fatal("Invalid migrations path", zap.Error(err))
		}
		*dir = abs
		source = os.DirFS(abs)
	}

	switch command {
	case "create":
		if err := create(*dir, rest, log); err != nil {
			log.Fatal("Create failed", zap.Error(err))
		}
		return
	case "list":
		names, err := migration.ListMigrations(source)
		if err != nil {
			log.Fatal("List failed", zap.Error(err))
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	run, ok := dbCommands[command]
	if !ok {
		log.Error("Unknown command", zap.String("command", command))
		flags.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable", zap.String("database", cfg.Database.DBName), zap.Error(err))
	}

	m, err := migration.Open(db, source, log)
	if err != nil {
		log.Fatal("Failed to open migrations", zap.Error(err))
	}
	defer m.Close()

	if err := run(m, rest, log); err != nil {
		log.Fatal("Migration failed", zap.String("command", command), zap.Error(err))
	}
}

func create(dir string, args []string, log *zap.Logger) error {
	if dir == "" {
		return fmt.Errorf("create writes to the source tree; pass --path")
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: migrate --path <dir> create <name> [description]")
	}
	desc := ""
	if len(args) > 1 {
		desc = args[1]
	}
	mf, err := migration.CreateMigration(dir, args[0], desc)
	if err != nil {
		return err
	}
	log.Info("Migration created", zap.String("up", mf.UpPath), zap.String("down", mf.DownPath))
	return nil
}

func intArg(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", what)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, args[0])
	}
	return n, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}
