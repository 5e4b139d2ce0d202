package source

import (
	"fmt"
	"strings"
)

// DriverLister enumerates the installed ODBC drivers.
type DriverLister interface {
	Drivers() ([]string, error)
}

// DriverListerFunc adapts a function to DriverLister.
type DriverListerFunc func() ([]string, error)

func (f DriverListerFunc) Drivers() ([]string, error) { return f() }

// AccessDriverNeedles are matched case-insensitively against installed driver
// names, in order of preference.
var AccessDriverNeedles = []string{
	"Microsoft Access Driver (*.mdb, *.accdb)",
	"Microsoft Access Driver (*.mdb)",
	"MDBTools",
}

// DetectAccessDriver returns the preferred installed Access driver.
func DetectAccessDriver(l DriverLister) (string, error) {
	if l == nil {
		l = SystemDrivers{}
	}
	drivers, err := l.Drivers()
	if err != nil {
		return "", fmt.Errorf("%w (listing drivers: %v)", ErrDriverNotFound, err)
	}
	if d, ok := PickAccessDriver(drivers); ok {
		return d, nil
	}
	return "", ErrDriverNotFound
}

// PickAccessDriver applies AccessDriverNeedles to drivers.
func PickAccessDriver(drivers []string) (string, bool) {
	for _, needle := range AccessDriverNeedles {
		needle = strings.ToLower(needle)
		for _, d := range drivers {
			if strings.Contains(strings.ToLower(d), needle) {
				return d, true
			}
		}
	}
	return "", false
}
