package dbexport

import (
	"fmt"
)

// Rows is the part of *sql.Rows a Cursor reads from.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Columns() ([]string, error)
	Close() error
	Err() error
}

// Cursor pages through a result set in fixed-size batches. Only one batch of
// rendered rows is held at a time; the buffers are reused between calls.
type Cursor struct {
	rows  Rows
	cols  []string
	vals  []interface{}
	ptrs  []interface{}
	batch [][]string
	done  bool
}

func NewCursor(rows Rows) (*Cursor, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("error getting columns: %w", err)
	}
	c := &Cursor{
		rows: rows,
		cols: cols,
		vals: make([]interface{}, len(cols)),
		ptrs: make([]interface{}, len(cols)),
	}
	for i := range c.vals {
		c.ptrs[i] = &c.vals[i]
	}
	return c, nil
}

// Columns returns the column names in result order.
func (c *Cursor) Columns() []string {
	return c.cols
}

// FetchMany returns up to n rows. An empty batch means the result set is
// exhausted. The returned slice is only valid until the next call.
func (c *Cursor) FetchMany(n int) ([][]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("batch size must be at least 1, got %d", n)
	}
	if c.done {
		return nil, nil
	}
	if cap(c.batch) < n {
		c.batch = make([][]string, 0, n)
	}
	c.batch = c.batch[:0]
	for len(c.batch) < n {
		if !c.rows.Next() {
			c.done = true
			if err := c.rows.Err(); err != nil {
				return nil, fmt.Errorf("row error: %w", err)
			}
			break
		}
		if err := c.rows.Scan(c.ptrs...); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		c.batch = c.batch[:len(c.batch)+1]
		rec := c.batch[len(c.batch)-1]
		if len(rec) != len(c.cols) {
			rec = make([]string, len(c.cols))
		}
		for i, v := range c.vals {
			rec[i] = FormatValue(v)
		}
		c.batch[len(c.batch)-1] = rec
	}
	return c.batch, nil
}

// Close releases the underlying result set.
func (c *Cursor) Close() error {
	return c.rows.Close()
}
