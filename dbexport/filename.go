package dbexport

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameRuns = regexp.MustCompile(`[\\/:"*?<>|]+`)

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// SanitizeFilename turns an object name into a safe file base name.
func SanitizeFilename(name string) string {
	name = unsafeFilenameRuns.ReplaceAllString(name, "_")
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		return "untitled"
	}
	stem, _, _ := strings.Cut(name, ".")
	if reservedNames[strings.ToUpper(strings.TrimSpace(stem))] {
		name = "_" + name
	}
	return name
}

// FileNamer hands out one CSV path per object and never the same path twice
// in a run, comparing case-insensitively.
type FileNamer struct {
	dir  string
	used map[string]bool
}

func NewFileNamer(dir string) *FileNamer {
	return &FileNamer{dir: dir, used: make(map[string]bool)}
}

// Path returns the output path for object.
func (n *FileNamer) Path(object string) string {
	base := SanitizeFilename(object)
	name := base
	for i := 2; n.used[strings.ToLower(name)]; i++ {
		name = fmt.Sprintf("%s_%d", base, i)
	}
	n.used[strings.ToLower(name)] = true
	return filepath.Join(n.dir, name+".csv")
}
