package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"postboard/app/config"
	"postboard/app/repositories"
)

// Tests swap these; nil means the process's stdout and stdin.
var (
	stdout     io.Writer
	stdin      io.Reader
	loadConfig = config.Load
)

func output() io.Writer {
	if stdout == nil {
		return os.Stdout
	}
	return stdout
}

func input() io.Reader {
	if stdin == nil {
		return os.Stdin
	}
	return stdin
}

// openStore opens the store selected by cfg.Store.Driver.
func openStore(cfg *config.Config) (repositories.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverBadger:
		return repositories.OpenBadger(cfg.Store.BadgerPath)
	case config.DriverSQLite:
		return repositories.OpenSQLite(cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// dataPath is the on-disk location of the configured store.
func dataPath(cfg *config.Config) string {
	if cfg.Store.Driver == config.DriverSQLite {
		return cfg.Store.SQLitePath
	}
	return cfg.Store.BadgerPath
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// confirm asks a yes/no question on stdin. Anything but y or Y is a no.
func confirm(prompt string) bool {
	fmt.Fprintf(output(), "%s [y/N] ", prompt)
	line, _ := bufio.NewReader(input()).ReadString('\n')
	response := strings.TrimSpace(line)
	return response == "y" || response == "Y"
}

func printf(format string, args ...interface{}) {
	fmt.Fprintf(output(), format, args...)
}
