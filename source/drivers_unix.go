//go:build !windows

package source

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// SystemDrivers reads driver names from the unixODBC/iODBC odbcinst.ini files.
type SystemDrivers struct{}

func (SystemDrivers) Drivers() ([]string, error) {
	return driversFromFiles(odbcinstPaths()...)
}

func odbcinstPaths() []string {
	var paths []string
	if dir := os.Getenv("ODBCSYSINI"); dir != "" {
		name := os.Getenv("ODBCINSTINI")
		if name == "" {
			name = "odbcinst.ini"
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	paths = append(paths,
		"/etc/odbcinst.ini",
		"/usr/local/etc/odbcinst.ini",
		"/opt/homebrew/etc/odbcinst.ini",
	)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".odbcinst.ini"))
	}
	return paths
}

// driversFromFiles returns the driver sections of the given odbcinst.ini
// files. Missing files are ignored.
func driversFromFiles(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	sources := make([]interface{}, len(paths))
	for i, p := range paths {
		sources[i] = p
	}
	f, err := ini.LooseLoad(sources[0], sources[1:]...)
	if err != nil {
		return nil, fmt.Errorf("reading odbcinst.ini: %w", err)
	}
	var drivers []string
	for _, name := range f.SectionStrings() {
		switch name {
		case ini.DefaultSection, "ODBC", "ODBC Drivers":
			continue
		}
		drivers = append(drivers, name)
	}
	return drivers, nil
}
