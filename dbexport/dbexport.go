// Package dbexport streams database tables and views into CSV files.
//
// Rows are pulled from the cursor in fixed-size batches, so memory use is
// bounded by one batch regardless of table size. Each file is written to a
// temporary name and renamed into place once complete.
package dbexport

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"access2csv/logging"

	"github.com/dustin/go-humanize"
)

// Source is what the exporter needs from an open database.
type Source interface {
	ListObjects(ctx context.Context, includeViews bool) (tables, views []string, err error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	Quote(name string) string
}

// Request describes one export run.
type Request struct {
	Label        string
	OutDir       string
	Tables       []string
	IncludeViews bool
	DryRun       bool
	Options      Options
}

// Result is the outcome of exporting one object.
type Result struct {
	Object string
	Path   string
	Rows   int64
	Bytes  int64
}

type Summary struct {
	Results []Result
	Rows    int64
}

type Exporter struct {
	Src Source
	Log *logging.Logger
	// Out receives the dry-run report, which is printed even in quiet mode.
	Out io.Writer
	// Progress enables the in-place row counter.
	Progress bool
}

func (e *Exporter) logger() *logging.Logger {
	if e.Log == nil {
		return logging.Discard()
	}
	return e.Log
}

// Run lists the database, selects the requested objects and exports each one
// into req.OutDir, stopping at the first failure.
func (e *Exporter) Run(ctx context.Context, req Request) (*Summary, error) {
	log := e.logger()
	tables, views, err := e.Src.ListObjects(ctx, req.IncludeViews)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	log.Debugf("catalog: %d tables, %d views", len(tables), len(views))

	selected, missing := SelectObjects(req.Tables, tables, views, req.IncludeViews)
	if len(missing) > 0 {
		log.Warnf("not found, skipping: %s", strings.Join(missing, ", "))
	}
	if len(selected) == 0 {
		return nil, ErrNothingToExport
	}

	if req.DryRun {
		e.printPlan(req, selected)
		return &Summary{}, nil
	}

	log.Infof("Connected to: %s", req.Label)
	log.Infof("Objects to export: %d", len(selected))
	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, &WriteError{Path: req.OutDir, Err: err}
	}

	namer := NewFileNamer(req.OutDir)
	sum := &Summary{}
	for _, name := range selected {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		log.Infof("- Export [%s] ...", name)
		res, err := e.ExportTable(ctx, name, namer.Path(name), req.Options)
		if err != nil {
			return sum, err
		}
		sum.Results = append(sum.Results, res)
		sum.Rows += res.Rows
		log.Infof("  -> %s (%s rows, %s)", res.Path, humanize.Comma(res.Rows), humanize.Bytes(uint64(res.Bytes)))
	}
	log.Infof("Done. %d files written, total %s rows.", len(sum.Results), humanize.Comma(sum.Rows))
	return sum, nil
}

func (e *Exporter) printPlan(req Request, selected []string) {
	out := e.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintln(out, "DRY RUN - nothing will be written.")
	fmt.Fprintf(out, "Source: %s\n", req.Label)
	fmt.Fprintf(out, "Would export (%d): %s\n", len(selected), strings.Join(selected, ", "))
	fmt.Fprintf(out, "Output dir: %s | delimiter='%s' | encoding='%s'\n",
		req.OutDir, string(req.Options.Delimiter), req.Options.EncodingName)
}

// ExportTable writes every row of object to path: a header with the column
// names, then the rows in cursor order.
func (e *Exporter) ExportTable(ctx context.Context, object, path string, opts Options) (Result, error) {
	res := Result{Object: object, Path: path}
	if opts.BatchSize < 1 {
		return res, fmt.Errorf("batch size must be at least 1, got %d", opts.BatchSize)
	}

	rows, err := e.Src.QueryContext(ctx, "SELECT * FROM "+e.Src.Quote(object))
	if err != nil {
		return res, &ReadError{Object: object, Err: fmt.Errorf("error querying table rows: %w", err)}
	}
	cur, err := NewCursor(rows)
	if err != nil {
		rows.Close()
		return res, &ReadError{Object: object, Err: err}
	}
	defer cur.Close()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	tmp, err := createTemp(path)
	if err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	out := newEncodedOutput(tmp, opts)
	w := NewRowWriter(out, opts.Delimiter, opts.LineTerm)
	if err := w.Write(cur.Columns()); err != nil {
		return res, &WriteError{Path: path, Err: fmt.Errorf("error writing header: %w", err)}
	}

	prog := newProgress(e.logger().Out(), e.Progress)
	defer prog.clear()
	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		batch, err := cur.FetchMany(opts.BatchSize)
		if err != nil {
			return res, &ReadError{Object: object, Err: err}
		}
		if len(batch) == 0 {
			break
		}
		if err := w.WriteAll(batch); err != nil {
			return res, &WriteError{Path: path, Err: err}
		}
		if err := out.Flush(); err != nil {
			return res, &WriteError{Path: path, Err: err}
		}
		res.Rows += int64(len(batch))
		prog.update(res.Rows)
	}

	if err := out.Close(); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return res, &WriteError{Path: path, Err: err}
	}
	committed = true
	if fi, err := os.Stat(path); err == nil {
		res.Bytes = fi.Size()
	}
	return res, nil
}
