package dbexport

import (
	"bytes"
	"io"
	"strings"
)

// RowWriter writes CSV records with minimal quoting and an arbitrary record
// terminator. Newlines inside quoted fields are written unchanged.
//
// A field is quoted when it contains the delimiter, a double quote, CR, LF
// or any character of the terminator. A record made of one empty field is
// written as "" so it cannot be mistaken for a blank line.
type RowWriter struct {
	dst   io.Writer
	delim rune
	term  string
	// special holds every character that forces quoting.
	special string
	buf     bytes.Buffer
}

func NewRowWriter(dst io.Writer, delimiter rune, term string) *RowWriter {
	return &RowWriter{
		dst:     dst,
		delim:   delimiter,
		term:    term,
		special: string(delimiter) + "\"\r\n" + term,
	}
}

// Write writes one record.
func (w *RowWriter) Write(record []string) error {
	w.buf.Reset()
	if len(record) == 1 && record[0] == "" {
		w.buf.WriteString(`""`)
	}
	for i, field := range record {
		if i > 0 {
			w.buf.WriteRune(w.delim)
		}
		if !w.needsQuotes(field) {
			w.buf.WriteString(field)
			continue
		}
		w.buf.WriteByte('"')
		w.buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		w.buf.WriteByte('"')
	}
	w.buf.WriteString(w.term)
	_, err := w.dst.Write(w.buf.Bytes())
	return err
}

func (w *RowWriter) needsQuotes(field string) bool {
	return field != "" && strings.ContainsAny(field, w.special)
}

// WriteAll writes every record of a batch.
func (w *RowWriter) WriteAll(records [][]string) error {
	for _, r := range records {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}
