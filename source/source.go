// Package source opens the database an export reads from and answers the
// catalog questions the exporter needs: which tables and views exist and
// what their columns are.
//
// The main connection kind is ODBC, either against an Access file through the
// installed Access driver or against a configured DSN. SQL Server, SQLite and
// DuckDB are reachable through their native database/sql drivers.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"access2csv/config"
	"access2csv/logging"
)

var (
	ErrDriverNotFound   = errors.New("could not find the Microsoft Access ODBC driver; install the Access Database Engine or pass --driver")
	ErrDatabaseNotFound = errors.New("database not found")
)

// ConnectError reports a failure to open or reach the database.
type ConnectError struct {
	Label string
	Err   error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connection error (%s): %v", e.Label, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// sqlOpen and dbPing are package-level variables to allow test injection.
var sqlOpen = sql.Open
var dbPing = func(ctx context.Context, db *sql.DB) error { return db.PingContext(ctx) }

// TableLister enumerates catalog objects of one ODBC table type, such as
// TABLE or VIEW.
type TableLister interface {
	Tables(ctx context.Context, tableType string) ([]string, error)
}

// Source is one open database connection.
type Source struct {
	DB    *sql.DB
	Kind  string
	Label string

	dialect dialect
	log     *logging.Logger
	// catalog is set for ODBC connections when the driver manager can be
	// called directly.
	catalog TableLister
	viaDSN  bool
}

// Open connects according to cfg. drivers is consulted only when an Access
// file is opened over ODBC without an explicit driver name.
func Open(ctx context.Context, cfg *config.Config, drivers DriverLister, logger *logging.Logger) (*Source, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	driverName, connString, label, err := connectionString(cfg, drivers)
	if err != nil {
		return nil, err
	}
	logger.Debugf("opening %s connection to %s", driverName, label)
	db, err := sqlOpen(driverName, connString)
	if err != nil {
		return nil, &ConnectError{Label: label, Err: err}
	}
	if err := dbPing(ctx, db); err != nil {
		db.Close()
		return nil, &ConnectError{Label: label, Err: err}
	}
	src := &Source{
		DB:      db,
		Kind:    cfg.Source,
		Label:   label,
		dialect: dialectFor(cfg.Source),
		log:     logger,
	}
	if driverName == "odbc" {
		src.catalog = newODBCCatalog(connString)
		src.viaDSN = cfg.DSN != ""
	}
	return src, nil
}

func (s *Source) Close() error {
	return s.DB.Close()
}

func (s *Source) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.DB.QueryContext(ctx, query, args...)
}

// Quote returns name as a quoted identifier for this source.
func (s *Source) Quote(name string) string {
	return s.dialect.quote(name)
}

func connectionString(cfg *config.Config, drivers DriverLister) (driverName, connString, label string, err error) {
	switch cfg.Source {
	case config.SourceODBC, "":
		if cfg.DSN != "" {
			return "odbc", DSNConnString(cfg.DSN, cfg.UID, cfg.PWD), "DSN=" + cfg.DSN, nil
		}
		driver := cfg.Driver
		if driver == "" {
			if driver, err = DetectAccessDriver(drivers); err != nil {
				return "", "", "", err
			}
		}
		if _, statErr := os.Stat(cfg.DBPath); statErr != nil {
			return "", "", "", fmt.Errorf("%w: %s", ErrDatabaseNotFound, cfg.DBPath)
		}
		return "odbc", FileConnString(driver, cfg.DBPath), cfg.DBPath, nil
	case config.SourceSQLServer:
		connString = fmt.Sprintf("server=%s;user id=%s;password=%s;port=%s;database=%s;encrypt=disable",
			cfg.Server, cfg.User, cfg.Password, cfg.Port, cfg.Database)
		return "sqlserver", connString, fmt.Sprintf("%s:%s/%s", cfg.Server, cfg.Port, cfg.Database), nil
	case config.SourceSQLite, config.SourceDuckDB:
		if _, statErr := os.Stat(cfg.DBPath); statErr != nil {
			return "", "", "", fmt.Errorf("%w: %s", ErrDatabaseNotFound, cfg.DBPath)
		}
		return cfg.Source, cfg.DBPath, cfg.DBPath, nil
	}
	return "", "", "", &config.Error{Msg: fmt.Sprintf("unknown source %q", cfg.Source)}
}

// FileConnString builds the ODBC connection string for an Access file.
func FileConnString(driver, path string) string {
	return fmt.Sprintf("DRIVER={%s};DBQ=%s;", driver, path)
}

// DSNConnString builds the ODBC connection string for a DSN. Credentials are
// only added when set.
func DSNConnString(dsn, uid, pwd string) string {
	parts := []string{"DSN=" + dsn}
	if uid != "" {
		parts = append(parts, "UID="+uid)
	}
	if pwd != "" {
		parts = append(parts, "PWD="+pwd)
	}
	return strings.Join(parts, ";") + ";"
}

type dialect struct {
	open, close string
}

func dialectFor(kind string) dialect {
	switch kind {
	case config.SourceSQLite, config.SourceDuckDB:
		return dialect{`"`, `"`}
	}
	return dialect{"[", "]"}
}

func (d dialect) quote(name string) string {
	return d.open + strings.ReplaceAll(name, d.close, d.close+d.close) + d.close
}
