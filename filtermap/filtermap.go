// Package filtermap parses rebrand filter maps (grd_filter.map,
// src_filter.map).
//
// A filter map is a sequence of backtick-quoted substitution pairs grouped
// by file:
//
//	`Chromium` = `${product_fullname}`
//	`The Chromium Authors` = `${company_fullname}`
//
//	file chrome/app/chromium_strings.grd
//	`Chromium OS` = `Acme OS`
//
// Pairs before the first file header form the default section (empty path)
// applied to every file. A file header takes the first whitespace-delimited
// word after "file" as the path; the rest of its line is ignored. Quoted
// text may span lines and cannot contain a backtick.
package filtermap

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/minios-linux/rebrand/pattern"
)

// ---------------------------------------------------------------------------
// Grammar
// ---------------------------------------------------------------------------

type mapGrammar struct {
	Defaults []*pairNode    `@@*`
	Sections []*sectionNode `@@*`
}

type sectionNode struct {
	Pos    lexer.Position
	Header string      `@Header`
	Pairs  []*pairNode `@@*`
}

type pairNode struct {
	Pos   lexer.Position
	Key   string `@Quoted "="`
	Value string `@Quoted`
}

var mapLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Quoted", Pattern: "`[^`]*`"},
	{Name: "Header", Pattern: `file\s+[^\s]+[^\r\n]*`},
	{Name: "Punct", Pattern: `=`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var mapParser = participle.MustBuild[mapGrammar](
	participle.Lexer(mapLexer),
	participle.Elide("Whitespace"),
)

// ---------------------------------------------------------------------------
// Model
// ---------------------------------------------------------------------------

// Map is a parsed filter map: default entries plus per-path overrides.
type Map struct {
	defaults []pattern.Entry
	files    map[string][]pattern.Entry
	order    []string
}

// SyntaxError reports a filter map that violates the grammar.
type SyntaxError struct {
	File   string
	Offset int
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	name := e.File
	if name == "" {
		name = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d: %s (offset %d)", name, e.Line, e.Column, e.Msg, e.Offset)
}

// ParseFile reads and parses a filter map from disk.
func ParseFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses filter map content. name is used in error positions only.
func Parse(name string, data []byte) (*Map, error) {
	g, err := mapParser.ParseBytes(name, data)
	if err != nil {
		return nil, syntaxError(name, err)
	}

	m := &Map{files: make(map[string][]pattern.Entry)}
	if m.defaults, err = convertPairs(name, g.Defaults); err != nil {
		return nil, err
	}

	for _, s := range g.Sections {
		fields := strings.Fields(strings.TrimPrefix(s.Header, "file"))
		path := fields[0]
		entries, err := convertPairs(name, s.Pairs)
		if err != nil {
			return nil, err
		}
		// A header with no pairs does not clear an earlier section.
		if len(entries) == 0 {
			continue
		}
		if _, ok := m.files[path]; !ok {
			m.order = append(m.order, path)
		}
		m.files[path] = entries
	}
	return m, nil
}

func convertPairs(name string, pairs []*pairNode) ([]pattern.Entry, error) {
	entries := make([]pattern.Entry, 0, len(pairs))
	for _, p := range pairs {
		key := unquote(p.Key)
		if key == "" {
			return nil, &SyntaxError{
				File:   name,
				Offset: p.Pos.Offset,
				Line:   p.Pos.Line,
				Column: p.Pos.Column,
				Msg:    "empty key",
			}
		}
		entries = append(entries, pattern.Entry{Key: key, Value: unquote(p.Value)})
	}
	return entries, nil
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "`"), "`")
}

func syntaxError(name string, err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return &SyntaxError{
			File:   name,
			Offset: pos.Offset,
			Line:   pos.Line,
			Column: pos.Column,
			Msg:    perr.Message(),
		}
	}
	return &SyntaxError{File: name, Msg: err.Error()}
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Defaults returns the entries applied to every file.
func (m *Map) Defaults() []pattern.Entry { return m.defaults }

// For returns the override entries for path (relative to the source root,
// slash-separated) and whether a section exists.
func (m *Map) For(path string) ([]pattern.Entry, bool) {
	entries, ok := m.files[path]
	return entries, ok
}

// Paths returns the paths of all file sections in first-seen order.
func (m *Map) Paths() []string { return m.order }

// Table builds the substitution table for path.
func (m *Map) Table(path string, b pattern.Brand) (pattern.Table, error) {
	overrides, _ := m.For(path)
	return pattern.Build(m.defaults, overrides, b)
}
