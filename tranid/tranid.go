// Package tranid computes GRIT translation ids for the messages of a GRD or
// GRDP file, and diffs two snapshots of the same file into an id remap.
//
// A translation id is derived from a message's presentable text (and its
// meaning attribute, if any), never from its name. Rewriting the text of a
// message therefore changes its id, and every XTB bundle keyed by the old id
// must be updated. See Reconcile and package xtb.
package tranid

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"html"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// Entry is one <message> of a GRD/GRDP file.
type Entry struct {
	// Name is the message's name attribute (IDS_...).
	Name string
	// Tag is the raw opening tag text.
	Tag string
	// ID is the translation id computed from the message content.
	ID string
}

// attrs matches a run of attributes; quoted values may contain '>'.
const attrs = `((?:\s+[\w:-]+\s*=\s*(?:"[^"]*"|'[^']*'))*)\s*`

var (
	reMessage  = regexp.MustCompile(`(?s)<message` + attrs + `>(.*?)</message\s*>`)
	reAttr     = regexp.MustCompile(`([\w:-]+)\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	reComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
	rePh       = regexp.MustCompile(`(?s)<ph` + attrs + `(?:/>|>.*?</ph\s*>)`)
	reLeftover = regexp.MustCompile(`<(?:[^>"']|"[^"]*"|'[^']*')*>`)
)

// Extract returns the messages of content in document order. Self-closing
// <message/> elements carry no text and are skipped.
func Extract(content string) []Entry {
	var entries []Entry
	for _, m := range reMessage.FindAllStringSubmatchIndex(content, -1) {
		attrs := parseAttrs(submatch(content, m, 1))
		body := submatch(content, m, 2)
		tagEnd := m[2*2] // start of body
		entries = append(entries, Entry{
			Name: attrs["name"],
			Tag:  content[m[0]:tagEnd],
			ID:   MessageID(PresentableText(body), attrs["meaning"]),
		})
	}
	return entries
}

// ExtractFile reads path and extracts its messages.
func ExtractFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Extract(string(data)), nil
}

func submatch(s string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return s[m[2*n]:m[2*n+1]]
}

func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range reAttr.FindAllStringSubmatch(s, -1) {
		v := m[2]
		if v == "" {
			v = m[3]
		}
		attrs[m[1]] = html.UnescapeString(v)
	}
	return attrs
}

// PresentableText normalises a message body the way GRIT does before
// hashing: comments are dropped, each <ph name="x"> becomes "X", entities
// are unescaped, and surrounding whitespace and one pair of ''' quotes are
// removed.
func PresentableText(body string) string {
	body = reComment.ReplaceAllString(body, "")

	var b strings.Builder
	last := 0
	for _, m := range rePh.FindAllStringSubmatchIndex(body, -1) {
		b.WriteString(unescapeText(body[last:m[0]]))
		attrs := parseAttrs(submatch(body, m, 1))
		b.WriteString(strings.ToUpper(attrs["name"]))
		last = m[1]
	}
	b.WriteString(unescapeText(body[last:]))

	// Whitespace kept inside ''' belongs to the message but not to its id.
	text := strings.TrimSpace(b.String())
	text = strings.TrimPrefix(text, "'''")
	text = strings.TrimSuffix(text, "'''")
	return strings.TrimSpace(text)
}

func unescapeText(s string) string {
	return html.UnescapeString(reLeftover.ReplaceAllString(s, ""))
}

// MessageID returns the GRIT translation id of text with the given meaning.
func MessageID(text, meaning string) string {
	fp := fingerprint(text)
	if meaning != "" {
		fp2 := fingerprint(meaning)
		if int64(fp) < 0 {
			fp = fp2 + fp<<1 + 1
		} else {
			fp = fp2 + fp<<1
		}
	}
	return strconv.FormatUint(fp&0x7fffffffffffffff, 10)
}

// fingerprint is the first 64 bits of the MD5 digest, big-endian.
func fingerprint(s string) uint64 {
	sum := md5.Sum([]byte(s))
	return binary.BigEndian.Uint64(sum[:8])
}
