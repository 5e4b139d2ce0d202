package cmd

import (
	"fmt"
	"io"
	"os"

	"access2csv/config"
	"access2csv/dbexport"

	"github.com/spf13/cobra"
)

// exitFunc is swapped in tests.
var exitFunc = os.Exit

// app carries the settings shared by one command tree.
type app struct {
	cfg        *config.Config
	configPath string
	stdout     io.Writer
	stderr     io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{cfg: config.Default(), stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "access2csv [flags] [db_path]",
		Short: "Export Access tables and views to CSV",
		Long: `Export the tables (and optionally the views) of a Microsoft Access database
to CSV files, one file per object, through ODBC.

The database is given as a file path or as an ODBC DSN (--dsn).`,
		Example: `  access2csv shop.accdb
  access2csv -o out -t Customers -t Orders -d ';' -e cp1252 shop.accdb
  access2csv --dsn Shop --uid reader --pwd secret --include-views`,
		Version:       Version,
		Args:          usageArgs(cobra.MaximumNArgs(1)),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExport(cmd, args)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate("access2csv {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &config.Error{Msg: fmt.Sprintf("%v\nRun '%s --help' for usage.", err, c.CommandPath())}
	})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file with default settings")
	pf.StringVar(&a.cfg.Source, "source", config.SourceODBC, "Connection kind: odbc, sqlserver, sqlite3, duckdb (env: ACCESS2CSV_SOURCE)")
	pf.StringVar(&a.cfg.DSN, "dsn", "", "ODBC DSN to use instead of a file path (env: ACCESS2CSV_DSN)")
	pf.StringVar(&a.cfg.UID, "uid", "", "User for the DSN (env: ACCESS2CSV_UID)")
	pf.StringVar(&a.cfg.PWD, "pwd", "", "Password for the DSN (env: ACCESS2CSV_PWD)")
	pf.StringVar(&a.cfg.Driver, "driver", "", "ODBC driver name, skips auto-detection (env: ACCESS2CSV_DRIVER)")
	pf.StringVar(&a.cfg.Server, "server", "", "MSSQL server hostname or IP (env: MSSQL_SERVER)")
	pf.StringVar(&a.cfg.Port, "port", "", "MSSQL server port (env: MSSQL_PORT)")
	pf.StringVar(&a.cfg.User, "user", "", "MSSQL username (env: MSSQL_USER)")
	pf.StringVar(&a.cfg.Password, "password", "", "MSSQL password (env: MSSQL_PASSWORD)")
	pf.StringVar(&a.cfg.Database, "database", "", "MSSQL database name (env: MSSQL_DATABASE)")
	pf.BoolVarP(&a.cfg.Verbose, "verbose", "v", false, "Print debug messages")

	f := rootCmd.Flags()
	f.StringVarP(&a.cfg.OutDir, "out", "o", config.DefaultOutDir, "Output directory (env: ACCESS2CSV_OUT)")
	f.StringArrayVarP(&a.cfg.Tables, "tables", "t", nil, "Table or view to export; repeat for more (default: all tables)")
	f.BoolVar(&a.cfg.IncludeViews, "include-views", false, "Also export views (saved select queries)")
	f.StringVarP(&a.cfg.Delimiter, "delimiter", "d", config.DefaultDelimiter, `Field delimiter, a single character; \t means TAB`)
	f.StringVarP(&a.cfg.Encoding, "encoding", "e", config.DefaultEncoding, "Output encoding, e.g. utf-8, utf-8-sig, cp1252, latin-1 (env: ACCESS2CSV_ENCODING)")
	f.StringVar(&a.cfg.LineTerm, "lineterm", "", `Line terminator: \n, \r\n, \r or a literal string (default: OS line separator)`)
	f.IntVar(&a.cfg.BatchSize, "batch-size", config.DefaultBatchSize, "Rows fetched per batch (env: ACCESS2CSV_BATCH_SIZE)")
	f.BoolVar(&a.cfg.ReplaceUnencodable, "replace-unencodable", false, "Replace characters the encoding cannot represent instead of failing")
	f.BoolVarP(&a.cfg.Quiet, "quiet", "q", false, "Suppress progress output")
	f.BoolVar(&a.cfg.DryRun, "dry-run", false, "Show what would be exported without writing anything")

	rootCmd.AddCommand(
		newTablesCmd(a),
		newFieldsCmd(a),
		newDriversCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// usageArgs marks positional argument errors as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return &config.Error{Msg: err.Error()}
		}
		return nil
	}
}

func (a *app) runExport(cmd *cobra.Command, args []string) error {
	if err := a.resolve(cmd, args); err != nil {
		return err
	}
	opts, err := dbexport.NewOptions(a.cfg)
	if err != nil {
		return err
	}
	return a.withSource(func(s *session) error {
		e := &dbexport.Exporter{
			Src:      s.src,
			Log:      s.log,
			Out:      a.stdout,
			Progress: !a.cfg.Quiet && dbexport.IsTerminal(a.stdout),
		}
		_, err := e.Run(s.ctx, dbexport.Request{
			Label:        s.src.Label,
			OutDir:       a.cfg.OutDir,
			Tables:       a.cfg.Tables,
			IncludeViews: a.cfg.IncludeViews,
			DryRun:       a.cfg.DryRun,
			Options:      opts,
		})
		return err
	})
}

// Execute runs the command line and exits with the code for its outcome.
func Execute() {
	if code := run(os.Args[1:], os.Stdout, os.Stderr); code != 0 {
		exitFunc(code)
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(stderr, err)
	}
	return exitCode(err)
}
