//go:build cgo && (linux || darwin || freebsd)

package source

// #cgo darwin LDFLAGS: -L /usr/local/opt/unixodbc/lib -lodbc
// #cgo darwin CFLAGS: -I /usr/local/opt/unixodbc/include
// #cgo linux LDFLAGS: -lodbc
// #cgo freebsd LDFLAGS: -L /usr/local/lib -lodbc
// #cgo freebsd CFLAGS: -I/usr/local/include
// #include <stdint.h>
// #include <sql.h>
// #include <sqlext.h>
//
// static SQLRETURN tablesOfType(uintptr_t stmt, SQLWCHAR *tableType) {
// 	return SQLTablesW((SQLHSTMT)stmt, NULL, 0, NULL, 0, NULL, 0, tableType, SQL_NTS);
// }
import "C"

import (
	"unsafe"

	"github.com/alexbrainman/odbc/api"
)

// sqlTables runs SQLTables on stmt for all objects of tableType.
func sqlTables(stmt api.SQLHSTMT, tableType string) api.SQLRETURN {
	t := api.StringToUTF16(tableType)
	ret := C.tablesOfType(C.uintptr_t(uintptr(unsafe.Pointer(stmt))), (*C.SQLWCHAR)(unsafe.Pointer(&t[0])))
	return api.SQLRETURN(ret)
}
