package dbexport

import (
	"fmt"
	"runtime"
	"unicode/utf8"

	"access2csv/config"

	"golang.org/x/text/encoding"
)

// Options control how one object is written.
type Options struct {
	Delimiter          rune
	LineTerm           string
	EncodingName       string
	Encoding           encoding.Encoding // nil means plain UTF-8
	ReplaceUnencodable bool
	BatchSize          int
}

// NewOptions validates the CSV settings of cfg.
func NewOptions(cfg *config.Config) (Options, error) {
	delim, err := ResolveDelimiter(cfg.Delimiter)
	if err != nil {
		return Options{}, err
	}
	enc, err := LookupEncoding(cfg.Encoding)
	if err != nil {
		return Options{}, err
	}
	if cfg.BatchSize < 1 {
		return Options{}, &config.Error{Msg: fmt.Sprintf("batch size must be at least 1, got %d", cfg.BatchSize)}
	}
	return Options{
		Delimiter:          delim,
		LineTerm:           ResolveLineTerminator(cfg.LineTerm),
		EncodingName:       cfg.Encoding,
		Encoding:           enc,
		ReplaceUnencodable: cfg.ReplaceUnencodable,
		BatchSize:          cfg.BatchSize,
	}, nil
}

// ResolveDelimiter turns the delimiter flag into a rune. The two-character
// text `\t` stands for TAB.
func ResolveDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, &config.Error{Msg: fmt.Sprintf("delimiter must be a single character, got %q", s)}
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, &config.Error{Msg: fmt.Sprintf("invalid delimiter %q", s)}
	}
	return r, nil
}

// ResolveLineTerminator maps the escapes `\n`, `\r\n` and `\r` to their
// control characters. Empty means the platform line separator; anything else
// is used literally.
func ResolveLineTerminator(s string) string {
	switch s {
	case "":
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	case `\n`:
		return "\n"
	case `\r\n`:
		return "\r\n"
	case `\r`:
		return "\r"
	}
	return s
}
