package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbhelper/internal/store"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: com.mysql.jdbc.Driver
  url: tcp(localhost:3306)/shop
  username: root
  password: secret
  max_open_conns: 4
  max_idle_conns: 2
  conn_max_lifetime: 1h
logging:
  level: debug
  format: json
  output: stdout
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "com.mysql.jdbc.Driver", cfg.Database.Driver)
	assert.Equal(t, "tcp(localhost:3306)/shop", cfg.Database.URL)
	assert.Equal(t, "root", cfg.Database.Username)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, 4, cfg.Database.MaxOpenConns)
	assert.Equal(t, 2, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, LoggingConfig{Level: "debug", Format: "json", Output: "stdout"}, cfg.Logging)
	assert.Empty(t, cfg.Warnings())
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "database:\n  url: other.db\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, store.DriverSQLite3, cfg.Database.Driver)
	assert.Equal(t, "other.db", cfg.Database.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [unclosed")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config file")
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite3
  url: file.db
logging:
  level: info
`)
	t.Setenv("DBHELPER_DB_DRIVER", "postgres")
	t.Setenv("DBHELPER_DB_URL", "postgres://db/shop")
	t.Setenv("DBHELPER_DB_USERNAME", "app")
	t.Setenv("DBHELPER_DB_PASSWORD", "pw")
	t.Setenv("DBHELPER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://db/shop", cfg.Database.URL)
	assert.Equal(t, "app", cfg.Database.Username)
	assert.Equal(t, "pw", cfg.Database.Password)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

// An unsupported driver loads cleanly and only fails once a connection is
// opened.
func TestLoad_UnknownDriverFailsLate(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: oracle.jdbc.OracleDriver\n  url: x\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	warns := cfg.Warnings()
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "oracle.jdbc.OracleDriver")

	_, err = store.Open(context.Background(), cfg.StoreConfig())
	require.Error(t, err)
	assert.True(t, store.IsConnectionError(err))
	assert.ErrorIs(t, err, store.ErrUnknownDriver)
}

func TestWarnings_EmptyURL(t *testing.T) {
	cfg := Default()
	cfg.Database.URL = ""
	assert.Equal(t, []string{"database.url is empty"}, cfg.Warnings())
}

func TestStoreConfig(t *testing.T) {
	cfg := Default()
	cfg.Database.Username = "u"
	cfg.Database.ConnMaxLifetime = time.Minute

	sc := cfg.StoreConfig()
	assert.Equal(t, store.Config{
		Driver:          store.DriverSQLite3,
		URL:             "dbhelper.db",
		Username:        "u",
		ConnMaxLifetime: time.Minute,
	}, sc)
}
