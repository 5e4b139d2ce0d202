package dbexport

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNothingToExport is returned when the selection is empty.
var ErrNothingToExport = errors.New("no tables/views found to export")

// ReadError is a database failure while listing or reading an object.
type ReadError struct {
	Object string
	Err    error
}

func (e *ReadError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("database error: %v", e.Err)
	}
	msg := fmt.Sprintf("read error in [%s]: %v", e.Object, e.Err)
	if IsMissingObject(e.Err) {
		msg += "\n\ncheck that the table or view exists and is spelled exactly as in the database"
	}
	return msg
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError is a failure creating or writing an output file, including
// characters the output encoding cannot represent.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write error for %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Substrings drivers use to report a missing table or query.
var missingObjectPatterns = []string{
	"cannot find the input table or query",
	"could not find",
	"invalid object name",
	"is not a valid object name",
	"no such table",
	"does not exist",
	"table does not exist",
	"invalid table name",
	"could not find object",
}

// IsMissingObject reports whether err, or any error it wraps, looks like the
// driver's way of saying a table or view does not exist.
func IsMissingObject(err error) bool {
	for err != nil {
		msg := strings.ToLower(err.Error())
		for _, pat := range missingObjectPatterns {
			if strings.Contains(msg, pat) {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}
