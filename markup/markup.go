// Package markup rewrites translatable text inside GRD, GRDP and XTB files.
//
// The scanner makes a single forward pass over the content. Tags are copied
// verbatim; text is rewritten only while a <message> or
// <translation> element is open. It is a lexer sufficient for substitution,
// not an XML parser: nesting is not tracked, and input that ends inside a tag
// is copied as-is.
package markup

import "strings"

// State is the scanner's region state.
type State int

const (
	// Outside means no tracked element is open; text is copied verbatim.
	Outside State = iota
	// InsideTranslatable means a tracked element is open; text is rewritten.
	InsideTranslatable
)

// Tracked element names whose text content is translatable.
var Tracked = []string{"message", "translation"}

// Scanner holds the state of one rewrite pass.
type Scanner struct {
	src   string
	pos   int
	state State
	open  string // name of the open tracked element
	out   strings.Builder
}

// Rewrite returns content with replace applied to every text run inside a
// tracked element. replace is typically pattern.Table.ReplaceWords.
func Rewrite(content string, replace func(string) string) string {
	s := &Scanner{src: content}
	s.out.Grow(len(content))
	s.run(replace)
	return s.out.String()
}

func (s *Scanner) run(replace func(string) string) {
	for s.pos < len(s.src) {
		text := s.readText()
		if text != "" {
			if s.state == InsideTranslatable {
				text = replace(text)
			}
			s.out.WriteString(text)
		}
		if s.pos == len(s.src) {
			return
		}
		tag := s.readTag()
		s.out.WriteString(tag)
		s.transition(tag)
	}
}

// readText consumes up to the next '<' or end of input.
func (s *Scanner) readText() string {
	start := s.pos
	if i := strings.IndexByte(s.src[start:], '<'); i >= 0 {
		s.pos = start + i
	} else {
		s.pos = len(s.src)
	}
	return s.src[start:s.pos]
}

// readTag consumes a tag starting at '<'. A tag cut off by end of input is
// returned as far as it goes.
func (s *Scanner) readTag() string {
	start := s.pos
	end, ok := TagEnd(s.src, start)
	if !ok {
		end = len(s.src)
	}
	s.pos = end
	return s.src[start:end]
}

// TagEnd returns the index just past the tag that starts at s[i] == '<' and
// whether the tag is terminated. A '>' inside a quoted attribute value does
// not end the tag; a quote counts only right after '='. A comment runs
// through "-->".
func TagEnd(s string, i int) (int, bool) {
	if strings.HasPrefix(s[i:], "<!--") {
		if j := strings.Index(s[i+4:], "-->"); j >= 0 {
			return i + 4 + j + 3, true
		}
		return len(s), false
	}
	var quote byte
	afterEq := false
	for j := i + 1; j < len(s); j++ {
		c := s[j]
		switch {
		case quote != 0:
			if c == quote {
				quote, afterEq = 0, false
			}
			continue
		case c == '>':
			return j + 1, true
		case afterEq && (c == '"' || c == '\''):
			quote = c
			continue
		}
		if !IsSpace(c) {
			afterEq = c == '='
		}
	}
	return len(s), false
}

func (s *Scanner) transition(tag string) {
	switch s.state {
	case Outside:
		if name, ok := openTag(tag); ok {
			s.state = InsideTranslatable
			s.open = name
		}
	case InsideTranslatable:
		if isCloseTag(tag, s.open) {
			s.state = Outside
			s.open = ""
		}
	}
}

// openTag reports whether tag opens a tracked element, either as "<name>"
// or as "<name" followed by whitespace and attributes. A self-closing tag
// has no text content and never opens a region.
func openTag(tag string) (string, bool) {
	if strings.HasSuffix(tag, "/>") {
		return "", false
	}
	for _, name := range Tracked {
		rest, ok := strings.CutPrefix(tag, "<"+name)
		if !ok {
			continue
		}
		if rest == ">" || (rest != "" && IsSpace(rest[0])) {
			return name, true
		}
	}
	return "", false
}

// isCloseTag reports whether tag is "</name>", allowing whitespace before '>'.
func isCloseTag(tag, name string) bool {
	rest, ok := strings.CutPrefix(tag, "</"+name)
	if !ok {
		return false
	}
	rest, ok = strings.CutSuffix(rest, ">")
	return ok && strings.TrimSpace(rest) == ""
}

// IsSpace reports whether c is XML whitespace.
func IsSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
