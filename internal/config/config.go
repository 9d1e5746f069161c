// Package config loads dbhelper settings from a YAML file with environment
// variable overrides.
//
// A minimal file:
//
//	database:
//	  driver: sqlite3
//	  url: file:customers.db
//	logging:
//	  level: info
//
// Environment variables take precedence over the file:
//
//	DBHELPER_DB_DRIVER, DBHELPER_DB_URL, DBHELPER_DB_USERNAME,
//	DBHELPER_DB_PASSWORD, DBHELPER_LOG_LEVEL
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/dbhelper/internal/store"
)

// Config is the complete dbhelper configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DatabaseConfig holds the connection settings.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"`
	URL             string        `yaml:"url"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// LoggingConfig holds the logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	Output string `yaml:"output"` // stdout, stderr
}

// Load reads path, applies environment overrides, and returns the result.
//
// Load does not validate the database section. An unrecognised driver
// surfaces as a warning from Warnings and as an error only when the
// connection is opened.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to Default when path does
// not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return cfg, err
}

// Default returns the built-in configuration: a local SQLite file and info
// level text logs on stderr.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: store.DriverSQLite3,
			URL:    "dbhelper.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DBHELPER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DBHELPER_DB_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("DBHELPER_DB_USERNAME"); v != "" {
		cfg.Database.Username = v
	}
	if v := os.Getenv("DBHELPER_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DBHELPER_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Warnings reports settings that will fail later but are accepted at load.
func (c *Config) Warnings() []string {
	var warns []string
	if _, err := store.ResolveDriver(c.Database.Driver); err != nil {
		warns = append(warns, fmt.Sprintf("database.driver %q is not supported (known: %v)", c.Database.Driver, store.SupportedDrivers()))
	}
	if c.Database.URL == "" {
		warns = append(warns, "database.url is empty")
	}
	return warns
}

// StoreConfig converts the database section for store.Open.
func (c *Config) StoreConfig() store.Config {
	return store.Config{
		Driver:          c.Database.Driver,
		URL:             c.Database.URL,
		Username:        c.Database.Username,
		Password:        c.Database.Password,
		MaxOpenConns:    c.Database.MaxOpenConns,
		MaxIdleConns:    c.Database.MaxIdleConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
	}
}
