package cmd

import (
	"testing"
)

func TestDrivers_MarksAccessDriver(t *testing.T) {
	stubDrivers(t, "SQL Server", "MDBTools", "Microsoft Access Driver (*.mdb, *.accdb)")
	code, stdout, stderr := runCmd(t, "drivers")
	if code != 0 {
		t.Fatalf("expected exit code 0, got %d", code)
	}
	want := "Installed ODBC drivers:\n" +
		"  SQL Server\n" +
		"  MDBTools\n" +
		"* Microsoft Access Driver (*.mdb, *.accdb)\n"
	if stdout != want {
		t.Errorf("got %q, want %q", stdout, want)
	}
	if stderr != "" {
		t.Errorf("unexpected warning: %q", stderr)
	}
}

func TestDrivers_NoAccessDriver(t *testing.T) {
	stubDrivers(t, "PostgreSQL Unicode")
	_, stdout, stderr := runCmd(t, "drivers")
	if stdout != "Installed ODBC drivers:\n  PostgreSQL Unicode\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if stderr != "warning: no Microsoft Access driver among them\n" {
		t.Errorf("unexpected warning %q", stderr)
	}
}

func TestDrivers_None(t *testing.T) {
	stubDrivers(t)
	_, stdout, _ := runCmd(t, "drivers")
	if stdout != "No ODBC drivers found.\n" {
		t.Errorf("unexpected output %q", stdout)
	}
}
