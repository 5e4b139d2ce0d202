package cmd

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"access2csv/config"
	"access2csv/source"

	_ "github.com/mattn/go-sqlite3"
)

// containsAll returns true if all substrings in subs are present in s.
func containsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// clearEnv blanks every variable the config layer reads.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		config.EnvSource, config.EnvDSN, config.EnvUID, config.EnvPWD, config.EnvDriver,
		config.EnvOutDir, config.EnvEncoding, config.EnvBatchSize,
		config.EnvServer, config.EnvPort, config.EnvUser, config.EnvPassword, config.EnvDatabase,
	} {
		t.Setenv(v, "")
	}
}

// stubDrivers replaces the installed driver list for the duration of a test.
func stubDrivers(t *testing.T, names ...string) {
	t.Helper()
	orig := systemDrivers
	systemDrivers = source.DriverListerFunc(func() ([]string, error) { return names, nil })
	t.Cleanup(func() { systemDrivers = orig })
}

// runCmd executes the command line and returns its exit code and output.
func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// newShopDB creates a small SQLite database file and returns its path.
func newShopDB(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("failed to open sqlite3: %v", err)
	}
	defer db.Close()
	for _, stmt := range []string{
		"CREATE TABLE Customers (id INTEGER NOT NULL, name TEXT, city TEXT)",
		"INSERT INTO Customers VALUES (1, 'Ann', 'Gent'), (2, 'Bob', NULL), (3, 'Cy; Jr.', 'Brugge')",
		`CREATE TABLE "Order Details" (order_id INTEGER, qty INTEGER, price REAL)`,
		`INSERT INTO "Order Details" VALUES (10, 2, 9.5), (11, 1, 20)`,
		"CREATE TABLE Empty (x TEXT)",
		"CREATE VIEW BigOrders AS SELECT * FROM \"Order Details\" WHERE price > 10",
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return path
}
