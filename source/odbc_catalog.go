//go:build windows || (cgo && (linux || darwin || freebsd))

package source

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/alexbrainman/odbc"
	"github.com/alexbrainman/odbc/api"
)

// tableNameColumn is the TABLE_NAME column of the SQLTables result set.
const tableNameColumn = 3

// maxNameLen bounds the TABLE_NAME buffer, in UTF-16 code units.
const maxNameLen = 512

// odbcCatalog lists objects with SQLTables on a connection of its own.
// database/sql does not expose catalog functions, so it talks to the
// driver manager through the handles of the odbc api package.
type odbcCatalog struct {
	connString string
}

func newODBCCatalog(connString string) TableLister {
	return &odbcCatalog{connString: connString}
}

func (c *odbcCatalog) Tables(ctx context.Context, tableType string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out api.SQLHANDLE
	if ret := api.SQLAllocHandle(api.SQL_HANDLE_ENV, api.SQLHANDLE(api.SQL_NULL_HANDLE), &out); odbc.IsError(ret) {
		return nil, fmt.Errorf("SQLAllocHandle(SQL_HANDLE_ENV) failed with code %d", ret)
	}
	env := api.SQLHENV(out)
	defer api.SQLFreeHandle(api.SQL_HANDLE_ENV, api.SQLHANDLE(env))
	if ret := api.SQLSetEnvUIntPtrAttr(env, api.SQL_ATTR_ODBC_VERSION, api.SQL_OV_ODBC3, 0); odbc.IsError(ret) {
		return nil, odbc.NewError("SQLSetEnvUIntPtrAttr", env)
	}

	if ret := api.SQLAllocHandle(api.SQL_HANDLE_DBC, api.SQLHANDLE(env), &out); odbc.IsError(ret) {
		return nil, odbc.NewError("SQLAllocHandle", env)
	}
	dbc := api.SQLHDBC(out)
	defer api.SQLFreeHandle(api.SQL_HANDLE_DBC, api.SQLHANDLE(dbc))
	b := api.StringToUTF16(c.connString)
	ret := api.SQLDriverConnect(dbc, 0,
		(*api.SQLWCHAR)(unsafe.Pointer(&b[0])), api.SQL_NTS,
		nil, 0, nil, api.SQL_DRIVER_NOPROMPT)
	if odbc.IsError(ret) {
		return nil, odbc.NewError("SQLDriverConnect", dbc)
	}
	defer api.SQLDisconnect(dbc)

	if ret := api.SQLAllocHandle(api.SQL_HANDLE_STMT, api.SQLHANDLE(dbc), &out); odbc.IsError(ret) {
		return nil, odbc.NewError("SQLAllocHandle", dbc)
	}
	stmt := api.SQLHSTMT(out)
	defer api.SQLFreeHandle(api.SQL_HANDLE_STMT, api.SQLHANDLE(stmt))

	if ret := sqlTables(stmt, tableType); odbc.IsError(ret) {
		return nil, odbc.NewError("SQLTables", stmt)
	}
	var names []string
	buf := make([]uint16, maxNameLen)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ret := api.SQLFetch(stmt)
		if ret == api.SQL_NO_DATA {
			break
		}
		if odbc.IsError(ret) {
			return nil, odbc.NewError("SQLFetch", stmt)
		}
		var n api.SQLLEN
		ret = api.SQLGetData(stmt, tableNameColumn, api.SQL_C_WCHAR,
			api.SQLPOINTER(unsafe.Pointer(&buf[0])), api.SQLLEN(len(buf)*2), &n)
		if odbc.IsError(ret) {
			return nil, odbc.NewError("SQLGetData", stmt)
		}
		if n == api.SQL_NULL_DATA {
			continue
		}
		names = append(names, api.UTF16ToString(buf))
	}
	return names, nil
}
