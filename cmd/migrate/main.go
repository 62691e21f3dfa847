// Command migrate manages the storefront database schema.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jeenmata/impex/internal/infrastructure/config"
	"github.com/jeenmata/impex/internal/infrastructure/logger"
	"github.com/jeenmata/impex/internal/infrastructure/migration"
	"go.uber.org/zap"
)

func main() {
	var (
		dir      string
		logLevel string
		confirm  bool
	)
	flag.StringVar(&dir, "dir", "", "Read migrations from this directory instead of the built-in set")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&confirm, "confirm", false, "Confirm destructive commands")
	flag.Usage = printUsage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"}, "impex-migrate")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	// Commands that only touch files
	switch command {
	case "create":
		if len(args) < 2 {
			log.Fatal("Migration name required. Usage: migrate -dir <dir> create <name>")
		}
		if dir == "" {
			log.Fatal("create needs -dir pointing at the migration sources")
		}
		m, err := migration.CreateMigration(dir, args[1])
		if err != nil {
			log.Fatal("Failed to create migration", zap.Error(err))
		}
		log.Info("Migration created", zap.Uint("version", m.Version), zap.String("name", m.Base()))
		return

	case "list":
		fsys := migration.Embedded()
		if dir != "" {
			fsys = os.DirFS(dir)
		}
		migrations, err := migration.ListMigrations(fsys)
		if err != nil {
			log.Fatal("Failed to list migrations", zap.Error(err))
		}
		for _, m := range migrations {
			fmt.Printf("  %s\n", m.Base())
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	if !cfg.Database.IsConfigured() {
		log.Fatal("No database configured. Set IMPEX_DATABASE_URL.")
	}

	var opts []migration.Option
	if dir != "" {
		opts = append(opts, migration.WithDir(dir))
	}
	m, err := migration.NewFromURL(cfg.Database.DSN(), log, opts...)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to close migrator", zap.Error(err))
		}
	}()

	if err := execute(m, command, args[1:], confirm, log); err != nil {
		log.Error("Migration command failed", zap.String("command", command), zap.Error(err))
		os.Exit(1)
	}
}

func execute(m *migration.Migrator, command string, args []string, confirm bool, log *zap.Logger) error {
	switch command {
	case "up":
		return m.Up()

	case "down":
		if !confirm {
			return fmt.Errorf("down rolls back every migration; rerun with -confirm")
		}
		return m.Down()

	case "step":
		n, err := intArg(args, "step count")
		if err != nil {
			return err
		}
		return m.Steps(n)

	case "goto":
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("version must not be negative")
		}
		return m.GoTo(uint(v))

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return err
		}
		log.Info("Current migration version", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil

	case "force":
		v, err := intArg(args, "version")
		if err != nil {
			return err
		}
		return m.Force(v)

	case "drop":
		if !confirm {
			return fmt.Errorf("drop removes every table; rerun with -confirm")
		}
		return m.Drop()
	}

	printUsage()
	return fmt.Errorf("unknown command %q", command)
}

func intArg(args []string, name string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%s required", name)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, args[0])
	}
	return n, nil
}

func printUsage() {
	fmt.Println(`Jeen Mata Impex schema migrations

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                Apply all pending migrations
  down              Roll back all migrations (needs -confirm)
  step <n>          Apply n migrations, negative n rolls back
  goto <version>    Migrate to a specific version
  version           Show the applied version
  force <version>   Mark a version as applied without running it
  drop              Drop every table (needs -confirm)
  create <name>     Write an empty migration pair into -dir
  list              List the available migrations

Flags:
  -dir string        Migration directory (default: built into the binary)
  -log-level string  Log level (default: info)
  -confirm           Confirm down and drop

Environment:
  IMPEX_DATABASE_URL  PostgreSQL connection URL`)
}
