// Package propfile implements reading and writing of flat key=value files
// such as Chromium's BRANDING file and the per-locale BRANDING_<locale>
// tables of a rebrand config dir.
//
// Format: key=value pairs, one per line. The first '=' separates key from
// value, so values may contain '='. Lines starting with '#' are comments and
// are preserved verbatim in the output, as are blank lines.
//
// The File type maintains the original line order so that round-trip
// serialization reproduces the source structure with updated values.
package propfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ---------------------------------------------------------------------------
// File model
// ---------------------------------------------------------------------------

// lineKind classifies each line in the file.
type lineKind int

const (
	lineBlank   lineKind = iota // blank / whitespace-only line
	lineComment                 // comment line (starts with #)
	lineEntry                   // key=value pair
)

// line is a single line in the file.
type line struct {
	kind  lineKind
	raw   string // original text (comment/blank)
	key   string // only for lineEntry
	value string // only for lineEntry; may be replaced by Set
}

// File represents a parsed key=value file.
type File struct {
	// lines stores all lines in document order.
	lines []line
	// index maps key → index in lines for fast lookup.
	index map[string]int
}

// New returns an empty File.
func New() *File {
	return &File{index: make(map[string]int)}
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// ParseFile reads and parses a key=value file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// Parse parses key=value content from a byte slice.
func Parse(data []byte) *File {
	f := New()

	for _, raw := range splitLines(data) {
		trimmed := strings.TrimSpace(raw)

		switch {
		case trimmed == "":
			f.lines = append(f.lines, line{kind: lineBlank, raw: raw})

		case strings.HasPrefix(trimmed, "#"):
			f.lines = append(f.lines, line{kind: lineComment, raw: raw})

		default:
			k, v, _ := strings.Cut(trimmed, "=")
			k = strings.TrimSpace(k)
			if k == "" {
				// Malformed line, kept as a comment.
				f.lines = append(f.lines, line{kind: lineComment, raw: raw})
				continue
			}
			f.Set(k, strings.TrimSpace(v))
		}
	}

	return f
}

// splitLines normalises line endings and drops the trailing empty element
// of content ending in a newline.
func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// ParseList parses a list file: one item per line, surrounding whitespace
// trimmed, blank lines skipped. Used for grd_files.txt, src_files.txt and
// grd_reserved.txt.
func ParseList(data []byte) []string {
	var items []string
	for _, raw := range splitLines(data) {
		if item := strings.TrimSpace(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ReadList reads and parses a list file from disk.
func ReadList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseList(data), nil
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Keys returns all keys in document order.
func (f *File) Keys() []string {
	keys := make([]string, 0, len(f.index))
	for _, ln := range f.lines {
		if ln.kind == lineEntry {
			keys = append(keys, ln.key)
		}
	}
	return keys
}

// Get returns the value for key and whether it was found.
func (f *File) Get(key string) (string, bool) {
	if idx, ok := f.index[key]; ok {
		return f.lines[idx].value, true
	}
	return "", false
}

// Set sets the value for key. An existing key keeps its position;
// a new key is appended at the end of the file.
func (f *File) Set(key, value string) {
	if idx, ok := f.index[key]; ok {
		f.lines[idx].value = value
		return
	}
	f.index[key] = len(f.lines)
	f.lines = append(f.lines, line{kind: lineEntry, key: key, value: value})
}

// Merge copies every entry of other into f, overriding existing values.
func (f *File) Merge(other *File) {
	for _, ln := range other.lines {
		if ln.kind == lineEntry {
			f.Set(ln.key, ln.value)
		}
	}
}

// Map returns a map of key → value.
func (f *File) Map() map[string]string {
	m := make(map[string]string, len(f.index))
	for _, ln := range f.lines {
		if ln.kind == lineEntry {
			m[ln.key] = ln.value
		}
	}
	return m
}

// Len returns the number of entries.
func (f *File) Len() int { return len(f.index) }

// ---------------------------------------------------------------------------
// Serialization
// ---------------------------------------------------------------------------

// Marshal serialises the file back to key=value format.
func (f *File) Marshal() []byte {
	var buf bytes.Buffer
	for _, ln := range f.lines {
		switch ln.kind {
		case lineBlank:
			buf.WriteByte('\n')
		case lineComment:
			buf.WriteString(ln.raw)
			buf.WriteByte('\n')
		case lineEntry:
			buf.WriteString(ln.key)
			buf.WriteByte('=')
			buf.WriteString(ln.value)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

// WriteFile serialises and writes to path, creating parent directories
// with 0755 permissions.
func (f *File) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, f.Marshal(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
