package dbexport

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progress redraws a single "Downloaded N rows..." line.
type progress struct {
	w       io.Writer
	enabled bool
	width   int
}

func newProgress(w io.Writer, enabled bool) *progress {
	return &progress{w: w, enabled: enabled && w != nil}
}

func (p *progress) update(rows int64) {
	if !p.enabled {
		return
	}
	s := fmt.Sprintf("Downloaded %s rows...", humanize.Comma(rows))
	p.width = len(s)
	fmt.Fprint(p.w, "\r"+s)
}

func (p *progress) clear() {
	if p.width == 0 {
		return
	}
	fmt.Fprint(p.w, "\r"+strings.Repeat(" ", p.width)+"\r")
	p.width = 0
}
