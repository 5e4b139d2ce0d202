// access2csv exports the tables and views of a Microsoft Access database to
// CSV files over ODBC.
//
// Usage:
//
//	access2csv [flags] <db_path>
//	  Export every table of the database into ./export
//	access2csv --dsn <dsn> [--uid <user> --pwd <password>] [flags]
//	  Export through a configured ODBC data source
//	access2csv tables [db_path]
//	  List all tables (and views with --include-views)
//	access2csv fields <table> [db_path]
//	  List the columns of a table
//	access2csv drivers
//	  List installed ODBC drivers
//
// Exit codes: 0 success, 2 usage or configuration error, 3 database error,
// 4 nothing to export, 5 write error.
package main

import (
	"access2csv/cmd"

	_ "github.com/alexbrainman/odbc"
	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/marcboeker/go-duckdb"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cmd.Execute()
}
