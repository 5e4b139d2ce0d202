package cmd

import (
	"context"
	"errors"

	"access2csv/config"
	"access2csv/dbexport"
	"access2csv/source"
)

// Process exit codes.
const (
	exitOK       = 0
	exitInternal = 1
	exitUsage    = 2
	exitDatabase = 3
	exitNothing  = 4
	exitWrite    = 5
)

// exitCode maps an error returned by a command to the process exit code.
func exitCode(err error) int {
	var (
		cfgErr   *config.Error
		connErr  *source.ConnectError
		readErr  *dbexport.ReadError
		writeErr *dbexport.WriteError
	)
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		return exitInternal
	case errors.As(err, &cfgErr),
		errors.Is(err, source.ErrDriverNotFound),
		errors.Is(err, source.ErrDatabaseNotFound):
		return exitUsage
	case errors.As(err, &connErr), errors.As(err, &readErr):
		return exitDatabase
	case errors.Is(err, dbexport.ErrNothingToExport):
		return exitNothing
	case errors.As(err, &writeErr):
		return exitWrite
	}
	return exitInternal
}
