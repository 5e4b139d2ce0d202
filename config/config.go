// Package config holds the settings of an export run and resolves them from
// command line flags, environment variables, a .env file and an optional YAML
// file, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Connection kinds.
const (
	SourceODBC      = "odbc"
	SourceSQLServer = "sqlserver"
	SourceSQLite    = "sqlite3"
	SourceDuckDB    = "duckdb"
)

// Defaults shared by flags and Default().
const (
	DefaultOutDir    = "export"
	DefaultDelimiter = ","
	DefaultEncoding  = "utf-8"
	DefaultBatchSize = 10000
)

type Config struct {
	Source string `yaml:"source"`
	DBPath string `yaml:"db_path"`

	// ODBC
	DSN    string `yaml:"dsn"`
	UID    string `yaml:"uid"`
	PWD    string `yaml:"pwd"`
	Driver string `yaml:"driver"`

	// SQL Server
	Server   string `yaml:"server"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	OutDir             string   `yaml:"out"`
	Tables             []string `yaml:"tables"`
	IncludeViews       bool     `yaml:"include_views"`
	Delimiter          string   `yaml:"delimiter"`
	Encoding           string   `yaml:"encoding"`
	LineTerm           string   `yaml:"lineterm"`
	BatchSize          int      `yaml:"batch_size"`
	ReplaceUnencodable bool     `yaml:"replace_unencodable"`
	Quiet              bool     `yaml:"quiet"`
	DryRun             bool     `yaml:"dry_run"`
	Verbose            bool     `yaml:"verbose"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Source:    SourceODBC,
		OutDir:    DefaultOutDir,
		Delimiter: DefaultDelimiter,
		Encoding:  DefaultEncoding,
		BatchSize: DefaultBatchSize,
	}
}

// Load reads a YAML config file. An empty path yields an empty Config.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Msg: fmt.Sprintf("read config: %v", err)}
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Msg: fmt.Sprintf("parse config %s: %v", path, err)}
	}
	return cfg, nil
}

// Error is a usage or configuration problem.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Validate checks the settings that do not depend on the database.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceODBC:
		if c.DSN == "" && strings.TrimSpace(c.DBPath) == "" {
			return &Error{Msg: "provide a path to the database or use --dsn"}
		}
	case SourceSQLite, SourceDuckDB:
		if strings.TrimSpace(c.DBPath) == "" {
			return &Error{Msg: fmt.Sprintf("source %s needs a database path", c.Source)}
		}
	case SourceSQLServer:
		if missing := c.missingSQLServer(); len(missing) > 0 {
			return &Error{Msg: fmt.Sprintf("missing required connection parameters: %s\nYou can set these via environment variables or CLI flags.", strings.Join(missing, ", "))}
		}
	default:
		return &Error{Msg: fmt.Sprintf("unknown source %q (want odbc, sqlserver, sqlite3 or duckdb)", c.Source)}
	}
	if c.BatchSize < 1 {
		return &Error{Msg: fmt.Sprintf("batch size must be at least 1, got %d", c.BatchSize)}
	}
	if c.OutDir == "" {
		return &Error{Msg: "output directory must not be empty"}
	}
	return nil
}

func (c *Config) missingSQLServer() []string {
	var missing []string
	if c.Server == "" {
		missing = append(missing, "MSSQL_SERVER (or --server)")
	}
	if c.Port == "" {
		missing = append(missing, "MSSQL_PORT (or --port)")
	}
	if c.User == "" {
		missing = append(missing, "MSSQL_USER (or --user)")
	}
	if c.Password == "" {
		missing = append(missing, "MSSQL_PASSWORD (or --password)")
	}
	if c.Database == "" {
		missing = append(missing, "MSSQL_DATABASE (or --database)")
	}
	return missing
}
