//go:build integration
// +build integration

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/alexbrainman/odbc"
)

// Integration tests: require the Access ODBC driver and a database reachable
// through a DSN (ACCESS2CSV_TEST_DSN) or as a file (ACCESS2CSV_TEST_DB).

func TestIntegration_ExportDSN(t *testing.T) {
	dsn := os.Getenv("ACCESS2CSV_TEST_DSN")
	if dsn == "" {
		t.Skip("ACCESS2CSV_TEST_DSN not set; skipping integration test")
	}
	out := t.TempDir()
	code, _, stderr := runCmd(t, "--dsn", dsn, "-q", "-o", out)
	if code != 0 {
		t.Fatalf("export failed with exit code %d: %s", code, stderr)
	}
	files, err := filepath.Glob(filepath.Join(out, "*.csv"))
	if err != nil || len(files) == 0 {
		t.Errorf("expected CSV files in %s, got %v (%v)", out, files, err)
	}
}

func TestIntegration_ListTablesFile(t *testing.T) {
	path := os.Getenv("ACCESS2CSV_TEST_DB")
	if path == "" {
		t.Skip("ACCESS2CSV_TEST_DB not set; skipping integration test")
	}
	code, stdout, stderr := runCmd(t, "tables", "--include-views", path)
	if code != 0 {
		t.Fatalf("tables failed with exit code %d: %s", code, stderr)
	}
	if strings.TrimSpace(stdout) == "" {
		t.Error("expected at least one table")
	}
	if strings.Contains(stdout, "MSys") {
		t.Errorf("system tables listed:\n%s", stdout)
	}
}

func TestIntegration_ExportFile(t *testing.T) {
	path := os.Getenv("ACCESS2CSV_TEST_DB")
	if path == "" {
		t.Skip("ACCESS2CSV_TEST_DB not set; skipping integration test")
	}
	out := t.TempDir()
	code, _, stderr := runCmd(t, "-q", "-o", out, path)
	if code != 0 {
		t.Fatalf("export failed with exit code %d: %s", code, stderr)
	}
	files, err := filepath.Glob(filepath.Join(out, "*.csv"))
	if err != nil || len(files) == 0 {
		t.Errorf("expected CSV files in %s, got %v (%v)", out, files, err)
	}
	for _, f := range files {
		if strings.HasPrefix(filepath.Base(f), "MSys") {
			t.Errorf("system table exported: %s", f)
		}
	}
}
