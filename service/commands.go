package service

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"postboard/app/backup"
	"postboard/app/config"
	"postboard/app/repositories"
	"postboard/app/seed"
)

const defaultBackupDir = "data/backups"

// HandleCommand runs one CLI command and returns the process exit code.
func HandleCommand(args []string) int {
	if len(args) < 1 {
		printHelp()
		return 1
	}

	cmd := args[0]
	if cmd == "help" {
		printHelp()
		return 0
	}
	if !isCommand(cmd) {
		printf("Unknown command: %s\n\n", cmd)
		printHelp()
		return 1
	}

	cfg, err := loadConfig()
	if err != nil {
		printf("Error: %v\n", err)
		return 1
	}

	switch cmd {
	case "serve":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := RunAppServer(ctx, cfg); err != nil {
			printf("Server error: %v\n", err)
			return 1
		}
		return 0
	case "clean":
		return clean(cfg, hasFlag(args[1:], "--force"))
	case "init":
		return initDb(cfg)
	case "seed":
		file := cfg.Store.SeedFile
		if len(args) > 1 {
			file = args[1]
		}
		return seedDb(cfg, file)
	case "backup":
		dir := defaultBackupDir
		if len(args) > 1 {
			dir = args[1]
		}
		return backupDb(cfg, dir)
	default: // restore
		if len(args) < 2 || args[1] == "--force" {
			printf("Error: backup file path required for restore\n")
			return 1
		}
		return restore(cfg, args[1], hasFlag(args[2:], "--force"))
	}
}

func isCommand(cmd string) bool {
	switch cmd {
	case "serve", "clean", "init", "seed", "backup", "restore":
		return true
	}
	return false
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

// printHelp prints help for the store and server commands.
func printHelp() {
	printf(`Usage: postboard <command> [options]

Commands:
  serve                           Run the posts API server
  init                            Initialize a new empty database
  clean [--force]                 Remove the database
  seed [file]                     Load posts and comments from a YAML fixture
  backup [dir]                    Write a compressed backup of the badger database
  restore <file> [--force]        Restore the badger database from a backup
  help                            Display this help message

Configuration is read from POSTBOARD_* environment variables and .env.
`)
}

// clean removes the database.
func clean(cfg *config.Config, force bool) int {
	path := dataPath(cfg)
	if !exists(path) {
		printf("Database is already clean (does not exist)\n")
		return 0
	}

	if !force && !confirm("Are you sure you want to clean the database? This cannot be undone.") {
		printf("Operation cancelled\n")
		return 0
	}

	if err := os.RemoveAll(path); err != nil {
		printf("Failed to clean database: %v\n", err)
		return 1
	}
	if cfg.Store.Driver == config.DriverSQLite {
		// WAL side files
		os.Remove(path + "-wal")
		os.Remove(path + "-shm")
	}
	printf("Database cleaned successfully\n")
	return 0
}

// initDb initializes a new empty database.
func initDb(cfg *config.Config) int {
	path := dataPath(cfg)
	if exists(path) {
		printf("Database already exists. Use 'clean' first if you want to reinitialize.\n")
		return 0
	}

	store, err := openStore(cfg)
	if err != nil {
		printf("Failed to initialize database: %v\n", err)
		return 1
	}
	if err := store.Close(); err != nil {
		printf("Failed to initialize database: %v\n", err)
		return 1
	}

	printf("Database initialized successfully at %s\n", path)
	return 0
}

// seedDb loads a fixture into the configured store.
func seedDb(cfg *config.Config, file string) int {
	fx, err := seed.Load(file)
	if err != nil {
		printf("Failed to load seed data: %v\n", err)
		return 1
	}

	store, err := openStore(cfg)
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return 1
	}
	defer store.Close()

	res, err := seed.Apply(context.Background(), store, fx)
	if err != nil {
		printf("Failed to seed database: %v\n", err)
		return 1
	}

	printf("Seeded %d posts and %d comments\n", res.Posts, res.Comments)
	return 0
}

// openBadgerOnly opens the configured store for commands that need badger's
// backup stream.
func openBadgerOnly(cfg *config.Config) (*repositories.BadgerStore, bool) {
	if cfg.Store.Driver != config.DriverBadger {
		printf("Error: backup and restore need the badger driver (configured: %s)\n", cfg.Store.Driver)
		return nil, false
	}
	store, err := repositories.OpenBadger(cfg.Store.BadgerPath)
	if err != nil {
		printf("Failed to open database: %v\n", err)
		return nil, false
	}
	return store, true
}

// backupDb creates a backup of the database.
func backupDb(cfg *config.Config, dir string) int {
	if cfg.Store.Driver == config.DriverBadger && !exists(cfg.Store.BadgerPath) {
		printf("No database exists to backup\n")
		return 1
	}

	store, ok := openBadgerOnly(cfg)
	if !ok {
		return 1
	}
	defer store.Close()

	path, err := backup.ToFile(store.DB(), dir, time.Now())
	if err != nil {
		printf("Failed to backup database: %v\n", err)
		return 1
	}

	printf("Database backed up successfully to %s\n", filepath.Clean(path))
	return 0
}

// restore restores the database from a backup.
func restore(cfg *config.Config, backupFile string, force bool) int {
	if !exists(backupFile) {
		printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}
	if cfg.Store.Driver != config.DriverBadger {
		printf("Error: backup and restore need the badger driver (configured: %s)\n", cfg.Store.Driver)
		return 1
	}

	if exists(cfg.Store.BadgerPath) {
		if !force && !confirm("Existing database found. Do you want to replace it?") {
			printf("Operation cancelled\n")
			return 1
		}
		if err := os.RemoveAll(cfg.Store.BadgerPath); err != nil {
			printf("Failed to remove existing database: %v\n", err)
			return 1
		}
	}

	store, ok := openBadgerOnly(cfg)
	if !ok {
		return 1
	}
	defer store.Close()

	if err := backup.FromFile(store.DB(), backupFile); err != nil {
		printf("Failed to restore database: %v\n", err)
		return 1
	}

	printf("Database restored successfully\n")
	return 0
}
