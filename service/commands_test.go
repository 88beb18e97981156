package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"postboard/app/config"
	"postboard/app/models"
	"postboard/app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestEnv points the store at a temp dir and captures stdout. The
// returned buffer collects everything the commands print.
func setupTestEnv(t *testing.T, driver string) (*config.Config, *bytes.Buffer) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("POSTBOARD_STORE.DRIVER", driver)
	t.Setenv("POSTBOARD_STORE.BADGER_PATH", filepath.Join(tmpDir, "badger"))
	t.Setenv("POSTBOARD_STORE.SQLITE_PATH", filepath.Join(tmpDir, "postboard.db"))
	t.Setenv("POSTBOARD_STORE.SEED_FILE", "")

	var out bytes.Buffer
	oldStdout, oldStdin := stdout, stdin
	stdout = &out
	t.Cleanup(func() {
		stdout = oldStdout
		stdin = oldStdin
	})

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg, &out
}

func mockStdin(input string) {
	stdin = strings.NewReader(input)
}

func countPosts(t *testing.T, cfg *config.Config) int {
	t.Helper()
	store, err := openStore(cfg)
	require.NoError(t, err)
	defer store.Close()
	posts, err := store.Find(context.Background())
	require.NoError(t, err)
	return len(posts)
}

func TestHandleCommand(t *testing.T) {
	setupTestEnv(t, config.DriverBadger)

	tests := []struct {
		name           string
		args           []string
		expectedOutput string
		expectedExit   int
	}{
		{
			name:           "no arguments",
			args:           []string{},
			expectedOutput: "Usage: postboard <command> [options]\n\nCommands:",
			expectedExit:   1,
		},
		{
			name:           "help command",
			args:           []string{"help"},
			expectedOutput: "Usage: postboard <command> [options]\n\nCommands:",
			expectedExit:   0,
		},
		{
			name:           "unknown command",
			args:           []string{"unknown"},
			expectedOutput: "Unknown command: unknown",
			expectedExit:   1,
		},
		{
			name:           "restore without file",
			args:           []string{"restore"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
		{
			name:           "restore with only force",
			args:           []string{"restore", "--force"},
			expectedOutput: "Error: backup file path required for restore",
			expectedExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			stdout = &out

			exitCode := HandleCommand(tt.args)

			assert.Contains(t, out.String(), tt.expectedOutput)
			assert.Equal(t, tt.expectedExit, exitCode)
		})
	}
}

func TestHandleCommandBadConfig(t *testing.T) {
	_, out := setupTestEnv(t, config.DriverBadger)
	t.Setenv("POSTBOARD_STORE.DRIVER", "postgres")

	assert.Equal(t, 1, HandleCommand([]string{"init"}))
	assert.Contains(t, out.String(), "Error: config validation failed")
}

func TestInitDb(t *testing.T) {
	for _, driver := range []string{config.DriverBadger, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg, out := setupTestEnv(t, driver)

			assert.Equal(t, 0, HandleCommand([]string{"init"}))
			assert.Contains(t, out.String(), "Database initialized successfully")
			assert.True(t, exists(dataPath(cfg)))

			out.Reset()
			assert.Equal(t, 0, HandleCommand([]string{"init"}))
			assert.Contains(t, out.String(), "Database already exists")
		})
	}
}

func TestClean(t *testing.T) {
	cfg, out := setupTestEnv(t, config.DriverBadger)

	t.Run("clean non-existent database", func(t *testing.T) {
		out.Reset()
		assert.Equal(t, 0, clean(cfg, false))
		assert.Contains(t, out.String(), "Database is already clean")
	})

	t.Run("clean existing database - confirmed", func(t *testing.T) {
		require.Equal(t, 0, initDb(cfg))
		assert.DirExists(t, cfg.Store.BadgerPath)

		out.Reset()
		mockStdin("y\n")
		assert.Equal(t, 0, clean(cfg, false))

		assert.Contains(t, out.String(), "Database cleaned successfully")
		assert.NoDirExists(t, cfg.Store.BadgerPath)
	})

	t.Run("clean existing database - cancelled", func(t *testing.T) {
		require.Equal(t, 0, initDb(cfg))

		out.Reset()
		mockStdin("n\n")
		assert.Equal(t, 0, clean(cfg, false))

		assert.Contains(t, out.String(), "Operation cancelled")
		assert.DirExists(t, cfg.Store.BadgerPath)
	})

	t.Run("clean with force skips the prompt", func(t *testing.T) {
		require.DirExists(t, cfg.Store.BadgerPath)

		out.Reset()
		mockStdin("")
		assert.Equal(t, 0, HandleCommand([]string{"clean", "--force"}))

		assert.Contains(t, out.String(), "Database cleaned successfully")
		assert.NotContains(t, out.String(), "[y/N]")
		assert.NoDirExists(t, cfg.Store.BadgerPath)
	})
}

func TestCleanSQLite(t *testing.T) {
	cfg, out := setupTestEnv(t, config.DriverSQLite)
	require.Equal(t, 0, initDb(cfg))
	require.FileExists(t, cfg.Store.SQLitePath)

	assert.Equal(t, 0, clean(cfg, true))
	assert.Contains(t, out.String(), "Database cleaned successfully")
	assert.NoFileExists(t, cfg.Store.SQLitePath)
}

func TestSeed(t *testing.T) {
	for _, driver := range []string{config.DriverBadger, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg, out := setupTestEnv(t, driver)

			assert.Equal(t, 0, HandleCommand([]string{"seed"}))
			assert.Contains(t, out.String(), "Seeded 4 posts and 6 comments")
			assert.Equal(t, 4, countPosts(t, cfg))
		})
	}

	t.Run("from file", func(t *testing.T) {
		cfg, out := setupTestEnv(t, config.DriverBadger)
		file := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(file, []byte("posts:\n  - title: a\n    contents: b\n"), 0644))

		assert.Equal(t, 0, HandleCommand([]string{"seed", file}))
		assert.Contains(t, out.String(), "Seeded 1 posts and 0 comments")
		assert.Equal(t, 1, countPosts(t, cfg))
	})

	t.Run("bad file", func(t *testing.T) {
		_, out := setupTestEnv(t, config.DriverBadger)

		assert.Equal(t, 1, HandleCommand([]string{"seed", filepath.Join(t.TempDir(), "missing.yaml")}))
		assert.Contains(t, out.String(), "Failed to load seed data")
	})
}

func TestBackup(t *testing.T) {
	cfg, out := setupTestEnv(t, config.DriverBadger)
	backupDir := filepath.Join(t.TempDir(), "backups")

	t.Run("backup non-existent database", func(t *testing.T) {
		out.Reset()
		assert.Equal(t, 1, backupDb(cfg, backupDir))
		assert.Contains(t, out.String(), "No database exists to backup")
	})

	t.Run("backup existing database", func(t *testing.T) {
		require.Equal(t, 0, seedDb(cfg, ""))

		out.Reset()
		assert.Equal(t, 0, HandleCommand([]string{"backup", backupDir}))

		assert.Contains(t, out.String(), "Database backed up successfully")
		matches, err := filepath.Glob(filepath.Join(backupDir, "backup_*.badger.zst"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("backup with sqlite driver", func(t *testing.T) {
		sqliteCfg, sqliteOut := setupTestEnv(t, config.DriverSQLite)
		assert.Equal(t, 1, backupDb(sqliteCfg, backupDir))
		assert.Contains(t, sqliteOut.String(), "need the badger driver")
	})
}

func TestRestore(t *testing.T) {
	cfg, out := setupTestEnv(t, config.DriverBadger)
	backupDir := filepath.Join(t.TempDir(), "backups")

	// Produce a backup holding the seeded posts, then start from scratch.
	require.Equal(t, 0, seedDb(cfg, ""))
	require.Equal(t, 0, backupDb(cfg, backupDir))
	matches, err := filepath.Glob(filepath.Join(backupDir, "*"))
	require.NoError(t, err)
	require.Len(t, matches, 1)
	backupFile := matches[0]
	require.Equal(t, 0, clean(cfg, true))

	t.Run("restore non-existent backup", func(t *testing.T) {
		out.Reset()
		assert.Equal(t, 1, restore(cfg, "nonexistent.badger.zst", false))
		assert.Contains(t, out.String(), "Backup file does not exist")
	})

	t.Run("restore to clean state", func(t *testing.T) {
		out.Reset()
		assert.Equal(t, 0, restore(cfg, backupFile, false))
		assert.Contains(t, out.String(), "Database restored successfully")
		assert.Equal(t, 4, countPosts(t, cfg))
	})

	t.Run("restore with existing database - cancelled", func(t *testing.T) {
		store, err := repositories.OpenBadger(cfg.Store.BadgerPath)
		require.NoError(t, err)
		_, err = store.Insert(context.Background(), &models.PostInput{Title: "extra", Contents: "post"})
		require.NoError(t, err)
		require.NoError(t, store.Close())

		out.Reset()
		mockStdin("n\n")
		assert.Equal(t, 1, restore(cfg, backupFile, false))
		assert.Contains(t, out.String(), "Operation cancelled")
		assert.Equal(t, 5, countPosts(t, cfg))
	})

	t.Run("restore with existing database - confirmed", func(t *testing.T) {
		out.Reset()
		mockStdin("y\n")
		assert.Equal(t, 0, restore(cfg, backupFile, false))
		assert.Contains(t, out.String(), "Database restored successfully")
		assert.Equal(t, 4, countPosts(t, cfg))
	})

	t.Run("restore garbage", func(t *testing.T) {
		garbage := filepath.Join(t.TempDir(), "garbage.badger.zst")
		require.NoError(t, os.WriteFile(garbage, []byte("test backup data"), 0644))

		out.Reset()
		assert.Equal(t, 1, HandleCommand([]string{"restore", garbage, "--force"}))
		assert.Contains(t, out.String(), "Failed to restore database")
	})
}
