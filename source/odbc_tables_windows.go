//go:build windows

package source

import (
	"syscall"
	"unsafe"

	"github.com/alexbrainman/odbc/api"
	"golang.org/x/sys/windows"
)

var procSQLTablesW = windows.NewLazySystemDLL("odbc32.dll").NewProc("SQLTablesW")

// sqlTables runs SQLTables on stmt for all objects of tableType.
func sqlTables(stmt api.SQLHSTMT, tableType string) api.SQLRETURN {
	t := api.StringToUTF16(tableType)
	nts := int16(api.SQL_NTS)
	r, _, _ := syscall.SyscallN(procSQLTablesW.Addr(),
		uintptr(stmt), 0, 0, 0, 0, 0, 0,
		uintptr(unsafe.Pointer(&t[0])), uintptr(nts))
	return api.SQLRETURN(r)
}
