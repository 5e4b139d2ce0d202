package dbexport

import (
	"fmt"
	"strings"

	"access2csv/config"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Names whose meaning differs between the WHATWG index and common usage,
// or that neither index knows.
var encodingAliases = map[string]encoding.Encoding{
	"utf-8-sig":  unicode.UTF8BOM,
	"utf8-sig":   unicode.UTF8BOM,
	"utf-16":     unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf16":      unicode.UTF16(unicode.LittleEndian, unicode.UseBOM),
	"utf-16-le":  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16le":   unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16-be":  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16be":   unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"latin-1":    charmap.ISO8859_1,
	"latin1":     charmap.ISO8859_1,
	"iso-8859-1": charmap.ISO8859_1,
	"iso8859-1":  charmap.ISO8859_1,
	"l1":         charmap.ISO8859_1,
	"cp1252":     charmap.Windows1252,
	"cp850":      charmap.CodePage850,
	"cp437":      charmap.CodePage437,
	"ascii":      usASCII,
	"us-ascii":   usASCII,
	"us":         usASCII,
	"646":        usASCII,
}

// usASCII is taken from the IANA index since x/text exports no ASCII
// encoding of its own. The WHATWG index maps "ascii" to windows-1252.
var usASCII = func() encoding.Encoding {
	enc, err := ianaindex.IANA.Encoding("US-ASCII")
	if err != nil || enc == nil {
		panic("x/text lacks US-ASCII")
	}
	return enc
}()

// LookupEncoding resolves an output encoding name. It returns nil for UTF-8,
// which needs no transcoding.
func LookupEncoding(name string) (encoding.Encoding, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	switch key {
	case "", "utf-8", "utf8", "u8":
		return nil, nil
	}
	if enc, ok := encodingAliases[key]; ok {
		return enc, nil
	}
	if enc, err := ianaindex.IANA.Encoding(key); err == nil {
		if enc == nil {
			// Registered with IANA but not implemented by x/text.
			return nil, &config.Error{Msg: fmt.Sprintf("unsupported encoding %q", name)}
		}
		return enc, nil
	}
	if enc, err := htmlindex.Get(key); err == nil {
		return enc, nil
	}
	return nil, &config.Error{Msg: fmt.Sprintf("unknown encoding %q", name)}
}
