// Package langmeta resolves the locale codes used in XTB bundle file names
// (generated_resources_pt-BR.xtb, chromium_strings_zh-TW.xtb, ...) and
// provides display names for the CLI.
package langmeta

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// BundleExt is the extension of translation bundle files.
const BundleExt = ".xtb"

// FromBundlePath extracts the locale from a bundle path of the form
// *_<locale>.xtb. The second result is false for any other path.
func FromBundlePath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, BundleExt) {
		return "", false
	}
	stem := strings.TrimSuffix(base, BundleExt)
	i := strings.LastIndexByte(stem, '_')
	if i < 0 || i == len(stem)-1 {
		return "", false
	}
	return stem[i+1:], true
}

func canonicalize(lang string) string {
	normalized := strings.ReplaceAll(strings.TrimSpace(lang), "_", "-")
	if normalized == "" {
		return ""
	}
	parts := strings.Split(normalized, "-")
	parts[0] = strings.ToLower(parts[0])
	if len(parts) >= 2 && len(parts[1]) == 2 {
		parts[1] = strings.ToUpper(parts[1])
	}
	return strings.Join(parts, "-")
}

// Candidates returns the lookup keys to try for lang, most specific first:
// the code as written, its canonical spelling, the BCP 47 form and the base
// language. Duplicates are removed.
func Candidates(lang string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	add(lang)
	canon := canonicalize(lang)
	add(canon)
	if tag, err := language.Parse(canon); err == nil {
		add(tag.String())
		if base, conf := tag.Base(); conf != language.No {
			add(base.String())
		}
	} else if i := strings.IndexByte(canon, '-'); i > 0 {
		add(canon[:i])
	}
	return out
}

// Name returns the native display name of lang, or lang itself when the
// code cannot be parsed.
func Name(lang string) string {
	tag, err := language.Parse(canonicalize(lang))
	if err != nil {
		return lang
	}
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return lang
}
