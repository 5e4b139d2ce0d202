//go:build !windows && !(cgo && (linux || darwin || freebsd))

package source

// Without cgo there is no driver manager to call, so objects are listed
// through SQL only.
func newODBCCatalog(string) TableLister { return nil }
