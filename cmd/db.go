// Package cmd contains the command-line interface of access2csv.
//
// This file resolves the run configuration and opens the database for the
// commands that need one, with context and signal handling.
//
// Settings come from, in order of precedence: command line flags,
// environment variables (a .env file is loaded if present), the YAML file
// given with --config, and built-in defaults. See package config for the
// variable names.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"access2csv/config"
	"access2csv/logging"
	"access2csv/source"

	"github.com/spf13/cobra"
)

// openSource and systemDrivers are package-level variables to allow test
// injection.
var openSource = source.Open
var systemDrivers source.DriverLister = source.SystemDrivers{}

// session is what a command body gets once the database is open.
type session struct {
	ctx context.Context
	src *source.Source
	log *logging.Logger
}

// resolve merges args, flags, environment and config file into a.cfg and
// validates the result. args holds at most the database path.
func (a *app) resolve(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		a.cfg.DBPath = args[0]
	}
	file, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	config.Resolve(a.cfg, cmd.Flags().Changed, file)
	return a.cfg.Validate()
}

func (a *app) logger() *logging.Logger {
	level := logging.LevelInfo
	switch {
	case a.cfg.Verbose:
		level = logging.LevelDebug
	case a.cfg.Quiet:
		level = logging.LevelQuiet
	}
	return logging.New(level, a.stdout, a.stderr)
}

// withSource opens the configured database, sets up context and signal
// handling, and calls fn with the live connection. The connection is closed
// when fn returns.
func (a *app) withSource(fn func(s *session) error) error {
	log := a.logger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, err := openSource(ctx, a.cfg, systemDrivers, log)
	if err != nil {
		return err
	}
	defer src.Close()
	log.Debugf("connected to %s (%s)", src.Label, src.Kind)
	return fn(&session{ctx: ctx, src: src, log: log})
}
