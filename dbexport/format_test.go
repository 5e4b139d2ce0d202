package dbexport

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"testing"
	"time"

	"access2csv/config"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestRowWriter(t *testing.T) {
	tests := []struct {
		name    string
		delim   rune
		term    string
		records [][]string
		want    string
	}{
		{"plain", ',', "\n", [][]string{{"a", "b"}, {"1", "2"}}, "a,b\n1,2\n"},
		{"crlf terminator", ',', "\r\n", [][]string{{"a"}, {"b"}}, "a\r\nb\r\n"},
		{"custom terminator", ',', "|", [][]string{{"a", "b"}, {"c", "d"}}, "a,b|c,d|"},
		{"tab delimiter", '\t', "\n", [][]string{{"x y", "z"}}, "x y\tz\n"},
		{"quotes doubled", ',', "\n", [][]string{{`say "hi"`}}, "\"say \"\"hi\"\"\"\n"},
		{"embedded newline kept", ',', "\r\n", [][]string{{"a\nb", "c"}}, "\"a\nb\",c\r\n"},
		{"delimiter quoted", ';', "\n", [][]string{{"a;b", "c,d"}}, "\"a;b\";c,d\n"},
		{"lone empty field", ',', "\n", [][]string{{""}}, "\"\"\n"},
		{"empty fields", ',', "\n", [][]string{{"", ""}}, ",\n"},
		{"terminator character quoted", ',', "|", [][]string{{"a|b", "c"}, {"d", "e"}}, "\"a|b\",c|d,e|"},
		{"any terminator character quoted", ',', ";;", [][]string{{"x;y", "z"}}, "\"x;y\",z;;"},
		{"leading space unquoted", ',', "\n", [][]string{{" a", "\tb", "\u00a0c"}}, " a,\tb,\u00a0c\n"},
		{"backslash dot unquoted", ',', "\n", [][]string{{`\.`}}, "\\.\n"},
		{"non-ascii delimiter", '§', "\n", [][]string{{"a§b", "c"}}, "\"a§b\"§c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewRowWriter(&buf, tt.delim, tt.term)
			if err := w.WriteAll(tt.records); err != nil {
				t.Fatalf("WriteAll failed: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("bytes"), "bytes"},
		{[]byte{0xff, 0x00, 0x10}, "0xff0010"},
		{true, "True"},
		{false, "False"},
		{int64(-42), "-42"},
		{int32(7), "7"},
		{3, "3"},
		{1.5, "1.5"},
		{2.0, "2.0"},
		{0.0, "0.0"},
		{0.1, "0.1"},
		{1e-5, "1e-05"},
		{1e20, "1e+20"},
		{float32(0.25), "0.25"},
		{math.NaN(), "nan"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{ts, "2024-03-05 14:07:09"},
		{ts.Add(1500 * time.Microsecond), "2024-03-05 14:07:09.001500"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"Customers":       "Customers",
		"Order Details":   "Order Details",
		`a/b\c:d`:         "a_b_c_d",
		`what?*<>|"`:      "what_",
		"  spaced  ":      "spaced",
		"...dots...":      "dots",
		"":                "untitled",
		"???":             "_",
		"   ":             "untitled",
		"CON":             "_CON",
		"nul":             "_nul",
		"com1.backup":     "_com1.backup",
		"CONSOLE":         "CONSOLE",
		"Ümlaut Tabelle":  "Ümlaut Tabelle",
		"Sales 2024/2025": "Sales 2024_2025",
	}
	for in, want := range tests {
		if got := SanitizeFilename(in); got != want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileNamer(t *testing.T) {
	n := NewFileNamer("out")
	got := []string{n.Path("a/b"), n.Path("a:b"), n.Path("A_B"), n.Path("other")}
	want := []string{
		filepath.Join("out", "a_b.csv"),
		filepath.Join("out", "a_b_2.csv"),
		filepath.Join("out", "A_B_3.csv"),
		filepath.Join("out", "other.csv"),
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveDelimiter(t *testing.T) {
	valid := map[string]rune{",": ',', ";": ';', "|": '|', `\t`: '\t', "\t": '\t', "§": '§'}
	for in, want := range valid {
		got, err := ResolveDelimiter(in)
		if err != nil || got != want {
			t.Errorf("ResolveDelimiter(%q) = %q, %v", in, got, err)
		}
	}
	for _, in := range []string{"", ",,", `"`, "\n", "\r", "ab"} {
		_, err := ResolveDelimiter(in)
		var cerr *config.Error
		if !errors.As(err, &cerr) {
			t.Errorf("ResolveDelimiter(%q): expected config error, got %v", in, err)
		}
	}
}

func TestResolveLineTerminator(t *testing.T) {
	tests := map[string]string{
		`\n`:   "\n",
		`\r\n`: "\r\n",
		`\r`:   "\r",
		"\r\n": "\r\n",
		";":    ";",
	}
	for in, want := range tests {
		if got := ResolveLineTerminator(in); got != want {
			t.Errorf("ResolveLineTerminator(%q) = %q, want %q", in, got, want)
		}
	}
	if got := ResolveLineTerminator(""); got != "\n" && got != "\r\n" {
		t.Errorf("unexpected platform default %q", got)
	}
}

func TestLookupEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", "utf_8"} {
		enc, err := LookupEncoding(name)
		if err != nil || enc != nil {
			t.Errorf("LookupEncoding(%q) = %v, %v; want nil, nil", name, enc, err)
		}
	}
	if enc, err := LookupEncoding("utf-8-sig"); err != nil || enc != unicode.UTF8BOM {
		t.Errorf("utf-8-sig: got %v, %v", enc, err)
	}
	if enc, err := LookupEncoding("latin-1"); err != nil || enc != charmap.ISO8859_1 {
		t.Errorf("latin-1: got %v, %v", enc, err)
	}
	if enc, err := LookupEncoding("CP1252"); err != nil || enc != charmap.Windows1252 {
		t.Errorf("cp1252: got %v, %v", enc, err)
	}
	if enc, err := LookupEncoding("windows-1250"); err != nil || enc == nil {
		t.Errorf("windows-1250: got %v, %v", enc, err)
	}
	if enc, err := LookupEncoding("shift_jis"); err != nil || enc == nil {
		t.Errorf("shift_jis: got %v, %v", enc, err)
	}
	for _, name := range []string{"ascii", "US-ASCII", "us"} {
		enc, err := LookupEncoding(name)
		if err != nil || enc == nil {
			t.Fatalf("%s: got %v, %v", name, enc, err)
		}
		if _, err := enc.NewEncoder().String("café"); err == nil {
			t.Errorf("%s: expected non-ASCII text to fail", name)
		}
		if got, err := enc.NewEncoder().String("cafe"); err != nil || got != "cafe" {
			t.Errorf("%s: got %q, %v", name, got, err)
		}
	}
	for _, name := range []string{"klingon", "iso-10646-ucs-basic"} {
		_, err := LookupEncoding(name)
		var cerr *config.Error
		if !errors.As(err, &cerr) {
			t.Errorf("%s: expected config error, got %v", name, err)
		}
	}
}

func TestNewOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Delimiter = `\t`
	cfg.LineTerm = `\r\n`
	cfg.Encoding = "cp1252"
	opts, err := NewOptions(cfg)
	if err != nil {
		t.Fatalf("NewOptions failed: %v", err)
	}
	if opts.Delimiter != '\t' || opts.LineTerm != "\r\n" || opts.Encoding != charmap.Windows1252 || opts.BatchSize != config.DefaultBatchSize {
		t.Errorf("unexpected options: %+v", opts)
	}

	cfg.BatchSize = 0
	if _, err := NewOptions(cfg); err == nil {
		t.Error("expected error for zero batch size")
	}
}

func TestCursor_FetchMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	defer db.Close()
	rows := sqlmock.NewRows([]string{"id", "name"})
	for i := 0; i < 5; i++ {
		rows.AddRow(i, nil)
	}
	mock.ExpectQuery("SELECT").WillReturnRows(rows)
	sqlRows, err := db.Query("SELECT id, name FROM t")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	cur, err := NewCursor(sqlRows)
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	defer cur.Close()

	if _, err := cur.FetchMany(0); err == nil {
		t.Error("expected error for batch size 0")
	}
	var sizes []int
	var last []string
	for {
		batch, err := cur.FetchMany(2)
		if err != nil {
			t.Fatalf("FetchMany failed: %v", err)
		}
		if len(batch) == 0 {
			break
		}
		sizes = append(sizes, len(batch))
		last = batch[len(batch)-1]
	}
	if len(sizes) != 3 || sizes[0] != 2 || sizes[1] != 2 || sizes[2] != 1 {
		t.Errorf("unexpected batch sizes %v", sizes)
	}
	if last[0] != "4" || last[1] != "" {
		t.Errorf("unexpected last row %q", last)
	}
	if cols := cur.Columns(); len(cols) != 2 || cols[1] != "name" {
		t.Errorf("unexpected columns %v", cols)
	}
}

type failingRows struct {
	cols    []string
	colErr  error
	scanErr error
	next    bool
}

func (r *failingRows) Next() bool                     { n := r.next; r.next = false; return n }
func (r *failingRows) Scan(dest ...interface{}) error { return r.scanErr }
func (r *failingRows) Columns() ([]string, error)     { return r.cols, r.colErr }
func (r *failingRows) Close() error                   { return nil }
func (r *failingRows) Err() error                     { return nil }

func TestCursor_Errors(t *testing.T) {
	if _, err := NewCursor(&failingRows{colErr: errors.New("boom")}); err == nil {
		t.Error("expected column error")
	}
	cur, err := NewCursor(&failingRows{cols: []string{"a"}, next: true, scanErr: errors.New("bad value")})
	if err != nil {
		t.Fatalf("NewCursor failed: %v", err)
	}
	if _, err := cur.FetchMany(10); err == nil || err.Error() != "error scanning row: bad value" {
		t.Errorf("expected scan error, got %v", err)
	}
}
