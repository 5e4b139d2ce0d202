package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables consulted for flags left unset.
const (
	EnvSource    = "ACCESS2CSV_SOURCE"
	EnvDSN       = "ACCESS2CSV_DSN"
	EnvUID       = "ACCESS2CSV_UID"
	EnvPWD       = "ACCESS2CSV_PWD"
	EnvDriver    = "ACCESS2CSV_DRIVER"
	EnvOutDir    = "ACCESS2CSV_OUT"
	EnvEncoding  = "ACCESS2CSV_ENCODING"
	EnvBatchSize = "ACCESS2CSV_BATCH_SIZE"
	EnvServer    = "MSSQL_SERVER"
	EnvPort      = "MSSQL_PORT"
	EnvUser      = "MSSQL_USER"
	EnvPassword  = "MSSQL_PASSWORD"
	EnvDatabase  = "MSSQL_DATABASE"
)

// loadDotEnv is swapped in tests to keep a stray .env out of them.
var loadDotEnv = func() error { return godotenv.Load() }

// Resolve fills every setting whose flag was not given on the command line.
// The environment (after loading a .env file, if any) wins over file, and
// file wins over the defaults already in cfg.
func Resolve(cfg *Config, changed func(flag string) bool, file *Config) {
	_ = loadDotEnv()
	if file == nil {
		file = &Config{}
	}
	str := func(flag, envVar string, dst *string, fileVal string) {
		if changed(flag) {
			return
		}
		if envVar != "" {
			if v := strings.TrimSpace(os.Getenv(envVar)); v != "" {
				*dst = v
				return
			}
		}
		if fileVal != "" {
			*dst = fileVal
		}
	}
	boolean := func(flag string, dst *bool, fileVal bool) {
		if !changed(flag) && fileVal {
			*dst = true
		}
	}

	str("source", EnvSource, &cfg.Source, file.Source)
	str("dsn", EnvDSN, &cfg.DSN, file.DSN)
	str("uid", EnvUID, &cfg.UID, file.UID)
	str("pwd", EnvPWD, &cfg.PWD, file.PWD)
	str("driver", EnvDriver, &cfg.Driver, file.Driver)
	str("server", EnvServer, &cfg.Server, file.Server)
	str("port", EnvPort, &cfg.Port, file.Port)
	str("user", EnvUser, &cfg.User, file.User)
	str("password", EnvPassword, &cfg.Password, file.Password)
	str("database", EnvDatabase, &cfg.Database, file.Database)
	str("out", EnvOutDir, &cfg.OutDir, file.OutDir)
	str("delimiter", "", &cfg.Delimiter, file.Delimiter)
	str("encoding", EnvEncoding, &cfg.Encoding, file.Encoding)
	str("lineterm", "", &cfg.LineTerm, file.LineTerm)

	if cfg.DBPath == "" {
		cfg.DBPath = file.DBPath
	}
	if !changed("tables") && len(cfg.Tables) == 0 {
		cfg.Tables = file.Tables
	}
	if !changed("batch-size") {
		if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvBatchSize))); err == nil {
			cfg.BatchSize = n
		} else if file.BatchSize != 0 {
			cfg.BatchSize = file.BatchSize
		}
	}

	boolean("include-views", &cfg.IncludeViews, file.IncludeViews)
	boolean("replace-unencodable", &cfg.ReplaceUnencodable, file.ReplaceUnencodable)
	boolean("quiet", &cfg.Quiet, file.Quiet)
	boolean("dry-run", &cfg.DryRun, file.DryRun)
	boolean("verbose", &cfg.Verbose, file.Verbose)
}
