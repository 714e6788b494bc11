// Package xtb renames translation ids in XTB translation bundles.
//
// Rewrite walks every <translation> construct, looks its id up in a
// remap and replaces the id attribute in place. Several old ids may map to
// the same new id when their messages end up with identical text; the first
// construct with a given resulting id is kept and later ones are dropped
// from their open tag through </translation>. Everything else is copied
// verbatim.
package xtb

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/minios-linux/rebrand/markup"
	"github.com/minios-linux/rebrand/tranid"
)

const (
	startTag = "<translation"
	endTag   = "</translation>"
)

var reID = regexp.MustCompile(`(?:^|\s)id\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// Result is the outcome of a Rewrite.
type Result struct {
	// Content is the rewritten bundle.
	Content string
	// Renamed counts constructs whose id was remapped.
	Renamed int
	// Dropped counts constructs removed as duplicates.
	Dropped int
}

// Changed reports whether any id was remapped. When false the caller should
// leave the file alone.
func (r Result) Changed() bool { return r.Renamed > 0 }

// Rewrite applies remap to content. An empty remap returns content as-is.
func Rewrite(content string, remap tranid.Remap) Result {
	if len(remap) == 0 {
		return Result{Content: content}
	}

	var (
		res     Result
		out     strings.Builder
		emitted = make(map[string]bool)
		i       = 0
	)
	out.Grow(len(content))

	for i < len(content) {
		start := nextStart(content, i)
		if start < 0 {
			out.WriteString(content[i:])
			break
		}
		out.WriteString(content[i:start])

		end, ok := markup.TagEnd(content, start)
		if !ok {
			out.WriteString(content[start:])
			break
		}
		tag := content[start:end]
		i = end

		loc := reID.FindStringSubmatchIndex(tag)
		if loc == nil {
			out.WriteString(tag)
			continue
		}
		gs, ge := loc[2], loc[3]
		if gs < 0 {
			gs, ge = loc[4], loc[5]
		}
		id := tag[gs:ge]
		newID, remapped := remap[id]
		if !remapped {
			newID = id
		}

		if emitted[newID] {
			res.Dropped++
			if !strings.HasSuffix(tag, "/>") {
				i = skipBody(content, i)
			}
			continue
		}
		emitted[newID] = true

		if remapped {
			res.Renamed++
			tag = tag[:gs] + newID + tag[ge:]
		}
		out.WriteString(tag)
	}

	res.Content = out.String()
	return res
}

// nextStart returns the index of the next "<translation" followed by
// whitespace, '>' or "/>" at or after i, or -1.
func nextStart(s string, i int) int {
	for {
		j := strings.Index(s[i:], startTag)
		if j < 0 {
			return -1
		}
		j += i
		k := j + len(startTag)
		if k < len(s) && (markup.IsSpace(s[k]) || s[k] == '>' || s[k] == '/') {
			return j
		}
		i = k
	}
}

// skipBody returns the index just past the next </translation>, or the end
// of s.
func skipBody(s string, i int) int {
	j := strings.Index(s[i:], endTag)
	if j < 0 {
		return len(s)
	}
	return i + j + len(endTag)
}

// RewriteFile applies remap to the bundle at path and writes it back only
// when an id changed.
func RewriteFile(path string, remap tranid.Remap) (Result, error) {
	if len(remap) == 0 {
		return Result{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	res := Rewrite(string(data), remap)
	if !res.Changed() {
		return res, nil
	}
	if err := os.WriteFile(path, []byte(res.Content), 0644); err != nil {
		return res, fmt.Errorf("writing %s: %w", path, err)
	}
	return res, nil
}
