package store

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server driver ("sqlserver")
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3" // SQLite driver, cgo ("sqlite3")
	_ "modernc.org/sqlite"          // SQLite driver, pure Go ("sqlite")
)

// database/sql driver names understood by Open.
const (
	DriverSQLite3   = "sqlite3"
	DriverSQLite    = "sqlite"
	DriverMySQL     = "mysql"
	DriverPostgres  = "pgx"
	DriverSQLServer = "sqlserver"
)

// ErrUnknownDriver is returned when a driver identifier cannot be resolved.
var ErrUnknownDriver = errors.New("unknown driver")

// driverAliases maps accepted driver identifiers to database/sql driver
// names. JDBC class names are accepted so existing properties files keep
// working.
var driverAliases = map[string]string{
	"sqlite3":         DriverSQLite3,
	"org.sqlite.jdbc": DriverSQLite3,

	"sqlite": DriverSQLite,

	"mysql":                    DriverMySQL,
	"com.mysql.jdbc.driver":    DriverMySQL,
	"com.mysql.cj.jdbc.driver": DriverMySQL,

	"pgx":                   DriverPostgres,
	"postgres":              DriverPostgres,
	"postgresql":            DriverPostgres,
	"org.postgresql.driver": DriverPostgres,

	"sqlserver": DriverSQLServer,
	"mssql":     DriverSQLServer,
	"com.microsoft.sqlserver.jdbc.sqlserverdriver": DriverSQLServer,
}

// ResolveDriver maps a configured driver identifier to the database/sql
// driver name it selects. Matching ignores case and surrounding space.
func ResolveDriver(id string) (string, error) {
	name, ok := driverAliases[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return "", fmt.Errorf("%w %q (supported: %s)", ErrUnknownDriver, id, strings.Join(SupportedDrivers(), ", "))
	}
	return name, nil
}

// SupportedDrivers returns the accepted driver identifiers, sorted.
func SupportedDrivers() []string {
	ids := make([]string, 0, len(driverAliases))
	for id := range driverAliases {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// dataSource builds the DSN handed to sql.Open for the given driver.
// Non-empty Username/Password from the configuration take precedence over
// credentials embedded in the URL. SQLite ignores credentials.
//
// The returned cleanup func releases driver-side registrations and must be
// called once the pool is closed.
func dataSource(driver string, cfg Config) (string, func(), error) {
	noop := func() {}

	switch driver {
	case DriverSQLite3, DriverSQLite:
		return cfg.URL, noop, nil

	case DriverMySQL:
		mc, err := mysql.ParseDSN(cfg.URL)
		if err != nil {
			return "", noop, fmt.Errorf("parse mysql dsn: %w", err)
		}
		if cfg.Username != "" {
			mc.User = cfg.Username
		}
		if cfg.Password != "" {
			mc.Passwd = cfg.Password
		}
		return mc.FormatDSN(), noop, nil

	case DriverPostgres:
		pc, err := pgx.ParseConfig(cfg.URL)
		if err != nil {
			return "", noop, fmt.Errorf("parse postgres dsn: %w", err)
		}
		if cfg.Username != "" {
			pc.User = cfg.Username
		}
		if cfg.Password != "" {
			pc.Password = cfg.Password
		}
		name := stdlib.RegisterConnConfig(pc)
		return name, func() { stdlib.UnregisterConnConfig(name) }, nil

	case DriverSQLServer:
		u, err := url.Parse(cfg.URL)
		if err != nil {
			return "", noop, fmt.Errorf("parse sqlserver dsn: %w", err)
		}
		if cfg.Username != "" {
			password, _ := u.User.Password()
			if cfg.Password != "" {
				password = cfg.Password
			}
			u.User = url.UserPassword(cfg.Username, password)
		}
		return u.String(), noop, nil

	default:
		return "", noop, fmt.Errorf("%w %q", ErrUnknownDriver, driver)
	}
}
