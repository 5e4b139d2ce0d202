//go:build windows

package source

import (
	"fmt"
	"sort"

	"golang.org/x/sys/windows/registry"
)

const odbcDriversKey = `SOFTWARE\ODBC\ODBCINST.INI\ODBC Drivers`

// SystemDrivers reads driver names from the ODBC section of the registry.
type SystemDrivers struct{}

func (SystemDrivers) Drivers() ([]string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, odbcDriversKey, registry.QUERY_VALUE)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", odbcDriversKey, err)
	}
	defer k.Close()
	names, err := k.ReadValueNames(0)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", odbcDriversKey, err)
	}
	sort.Strings(names)
	return names, nil
}
