// Package config loads the postboard runtime configuration.
//
// Values come from built-in defaults, overridden by environment variables
// prefixed with POSTBOARD_. A .env file in the working directory is loaded
// into the environment first. Nested keys use "." as the delimiter, so
// POSTBOARD_SERVER.PORT sets server.port. Shells cannot export names with
// dots, so such keys are normally set in .env or passed through env(1).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "POSTBOARD_"

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

type Config struct {
	Primary Primary      `koanf:"primary" validate:"required"`
	Server  ServerConfig `koanf:"server" validate:"required"`
	Store   StoreConfig  `koanf:"store" validate:"required"`
}

// Primary holds settings that apply to the whole process.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development production test"`

	// DebugErrors adds the underlying error and its stack to 500 responses.
	DebugErrors bool   `koanf:"debug_errors"`
	LogLevel    string `koanf:"log_level" validate:"required,oneof=trace debug info warn error"`
}

type ServerConfig struct {
	Port            string        `koanf:"port" validate:"required,numeric"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"required"`
	RequestTimeout  time.Duration `koanf:"request_timeout" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required"`
}

// StoreConfig selects and locates the post store. An empty BadgerPath
// runs badger in memory.
type StoreConfig struct {
	Driver     string `koanf:"driver" validate:"required,oneof=badger sqlite"`
	BadgerPath string `koanf:"badger_path"`
	SQLitePath string `koanf:"sqlite_path" validate:"required_if=Driver sqlite"`
	SeedFile   string `koanf:"seed_file"`
}

// IsDevelopment reports whether the process runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == "development"
}

// Defaults returns the flat key map used before the environment is read.
func Defaults() map[string]any {
	return map[string]any{
		"primary.env":             "development",
		"primary.debug_errors":    false,
		"primary.log_level":       "info",
		"server.port":             "8080",
		"server.read_timeout":     "15s",
		"server.write_timeout":    "15s",
		"server.idle_timeout":     "60s",
		"server.request_timeout":  "10s",
		"server.shutdown_timeout": "10s",
		"store.driver":            DriverBadger,
		"store.badger_path":       "data/badger",
		"store.sqlite_path":       "data/postboard.db",
		"store.seed_file":         "",
	}
}

// Load reads the configuration from defaults and the environment and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("could not load config defaults: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
