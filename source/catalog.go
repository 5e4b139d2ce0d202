package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"access2csv/config"
)

// MSysObjects type codes.
const (
	msysLocalTable  = 1
	msysLinkedODBC  = 4
	msysQuery       = 5
	msysLinkedTable = 6
)

const (
	accessCatalogQuery = `SELECT Name, Type, Flags FROM MSysObjects WHERE Type IN (1, 4, 5, 6) ORDER BY Name`
	infoSchemaQuery    = `SELECT TABLE_NAME, TABLE_TYPE FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_TYPE IN ('BASE TABLE', 'VIEW') ORDER BY TABLE_NAME`
	sqliteCatalogQuery = `SELECT name, type FROM sqlite_master WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%' ORDER BY name`
)

// ODBC SQLTables table types.
const (
	odbcTableType = "TABLE"
	odbcViewType  = "VIEW"
)

// ListObjects returns the exportable tables and, when includeViews is set,
// the views of the database. System tables are never returned.
//
// ODBC connections are listed with SQLTables. MSysObjects is read when
// SQLTables is unavailable or fails, and INFORMATION_SCHEMA is tried last,
// only for DSN connections since Access files have no such schema.
func (s *Source) ListObjects(ctx context.Context, includeViews bool) (tables, views []string, err error) {
	switch s.Kind {
	case config.SourceSQLite:
		tables, views, err = listSQLite(ctx, s.DB)
	case config.SourceSQLServer, config.SourceDuckDB:
		tables, views, err = listInformationSchema(ctx, s.DB)
	default:
		tables, views, err = s.listODBC(ctx, includeViews)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error listing tables: %w", err)
	}
	if !includeViews {
		views = nil
	}
	return tables, views, nil
}

func (s *Source) listODBC(ctx context.Context, includeViews bool) (tables, views []string, err error) {
	var errs []error
	if s.catalog != nil {
		tables, views, err = listCatalog(ctx, s.catalog, includeViews)
		if err == nil {
			return tables, views, nil
		}
		s.log.Debugf("SQLTables failed (%v), trying MSysObjects", err)
		errs = append(errs, err)
	}
	tables, views, err = listAccess(ctx, s.DB)
	if err == nil {
		return tables, views, nil
	}
	errs = append(errs, err)
	if s.viaDSN {
		s.log.Debugf("MSysObjects not readable (%v), trying INFORMATION_SCHEMA", err)
		tables, views, err = listInformationSchema(ctx, s.DB)
		if err == nil {
			return tables, views, nil
		}
		errs = append(errs, err)
	}
	return nil, nil, errors.Join(errs...)
}

func listCatalog(ctx context.Context, catalog TableLister, includeViews bool) (tables, views []string, err error) {
	names, err := catalog.Tables(ctx, odbcTableType)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range names {
		if name == "" || strings.HasPrefix(name, "~") || !isUserTable(name) {
			continue
		}
		tables = append(tables, name)
	}
	if !includeViews {
		return tables, nil, nil
	}
	names, err = catalog.Tables(ctx, odbcViewType)
	if err != nil {
		return nil, nil, err
	}
	for _, name := range names {
		if name != "" {
			views = append(views, name)
		}
	}
	return tables, views, nil
}

func listAccess(ctx context.Context, db *sql.DB) (tables, views []string, err error) {
	rows, err := db.QueryContext(ctx, accessCatalogQuery)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name sql.NullString
		var typ, flags sql.NullInt64
		if err := rows.Scan(&name, &typ, &flags); err != nil {
			return nil, nil, fmt.Errorf("error scanning catalog row: %w", err)
		}
		if !name.Valid || name.String == "" || strings.HasPrefix(name.String, "~") {
			continue
		}
		switch typ.Int64 {
		case msysLocalTable, msysLinkedODBC, msysLinkedTable:
			// Negative flags and bit 1 mark system objects.
			if flags.Int64 < 0 || flags.Int64&2 != 0 {
				continue
			}
			if isUserTable(name.String) {
				tables = append(tables, name.String)
			}
		case msysQuery:
			// Only plain select queries have no flags set.
			if flags.Int64 == 0 {
				views = append(views, name.String)
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row error: %w", err)
	}
	return tables, views, nil
}

func listInformationSchema(ctx context.Context, db *sql.DB) (tables, views []string, err error) {
	return listTyped(ctx, db, infoSchemaQuery, "BASE TABLE", "VIEW")
}

func listSQLite(ctx context.Context, db *sql.DB) (tables, views []string, err error) {
	return listTyped(ctx, db, sqliteCatalogQuery, "table", "view")
}

func listTyped(ctx context.Context, db *sql.DB, query, tableType, viewType string) (tables, views []string, err error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name, typ sql.NullString
		if err := rows.Scan(&name, &typ); err != nil {
			return nil, nil, fmt.Errorf("error scanning table name: %w", err)
		}
		if !name.Valid || name.String == "" {
			continue
		}
		switch {
		case strings.EqualFold(typ.String, tableType):
			if isUserTable(name.String) {
				tables = append(tables, name.String)
			}
		case strings.EqualFold(typ.String, viewType):
			views = append(views, name.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("row error: %w", err)
	}
	return tables, views, nil
}

func isUserTable(name string) bool {
	return !strings.HasPrefix(name, "MSys")
}

// Column describes one result column of a table.
type Column struct {
	Name     string
	Type     string
	Nullable string
}

// Columns returns the columns of table in source order.
func (s *Source) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1=0", s.Quote(table)))
	if err != nil {
		return nil, fmt.Errorf("error querying fields of %s: %w", table, err)
	}
	defer rows.Close()
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("error getting column types: %w", err)
	}
	cols := make([]Column, len(types))
	for i, ct := range types {
		nullable := "?"
		if n, ok := ct.Nullable(); ok {
			nullable = "NO"
			if n {
				nullable = "YES"
			}
		}
		cols[i] = Column{Name: ct.Name(), Type: ct.DatabaseTypeName(), Nullable: nullable}
	}
	return cols, nil
}
