// Package guard shields reserved literals from substitution.
//
// Before a file is rewritten every occurrence of a reserved literal is
// replaced with a placeholder derived from the literal's BLAKE3 digest, and
// the placeholders are swapped back afterwards. The placeholder for a given
// literal is the same on every run. Protect works on the whole file content,
// not just on translatable text.
package guard

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/minios-linux/rebrand/propfile"
)

// ErrPlaceholderInContent is returned by Protect when the content already
// contains one of the placeholders, which would make Restore lossy.
var ErrPlaceholderInContent = errors.New("content already contains a reserved-token placeholder")

// Token pairs a reserved literal with its placeholder.
type Token struct {
	Literal     string
	Placeholder string
}

// Guard holds the reserved tokens of one run.
type Guard struct {
	tokens   []Token
	protect  *strings.Replacer
	restore  *strings.Replacer
	byHolder map[string]string
}

// Placeholder returns the deterministic placeholder for literal.
func Placeholder(literal string) string {
	sum := blake3.Sum256([]byte(literal))
	return hex.EncodeToString(sum[:16])
}

// New builds a guard for literals. Empty and duplicate literals are ignored.
// Longer literals take precedence over literals they contain.
func New(literals []string) *Guard {
	g := &Guard{byHolder: make(map[string]string, len(literals))}
	seen := make(map[string]bool, len(literals))
	for _, lit := range literals {
		if lit == "" || seen[lit] {
			continue
		}
		seen[lit] = true
		t := Token{Literal: lit, Placeholder: Placeholder(lit)}
		g.tokens = append(g.tokens, t)
		g.byHolder[t.Placeholder] = lit
	}

	ordered := make([]Token, len(g.tokens))
	copy(ordered, g.tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Literal) > len(ordered[j].Literal)
	})

	var fwd, back []string
	for _, t := range ordered {
		fwd = append(fwd, t.Literal, t.Placeholder)
		back = append(back, t.Placeholder, t.Literal)
	}
	g.protect = strings.NewReplacer(fwd...)
	g.restore = strings.NewReplacer(back...)
	return g
}

// LoadFile builds a guard from a list file (one literal per line).
func LoadFile(path string) (*Guard, error) {
	literals, err := propfile.ReadList(path)
	if err != nil {
		return nil, err
	}
	return New(literals), nil
}

// Tokens returns the reserved tokens in configuration order.
func (g *Guard) Tokens() []Token { return g.tokens }

// Len returns the number of reserved tokens.
func (g *Guard) Len() int { return len(g.tokens) }

// Protect replaces every reserved literal in content with its placeholder.
func (g *Guard) Protect(content string) (string, error) {
	if len(g.tokens) == 0 {
		return content, nil
	}
	for holder, lit := range g.byHolder {
		if strings.Contains(content, holder) {
			return "", fmt.Errorf("%w: placeholder %s for %q", ErrPlaceholderInContent, holder, lit)
		}
	}
	return g.protect.Replace(content), nil
}

// Restore reverses Protect.
func (g *Guard) Restore(content string) string {
	if len(g.tokens) == 0 {
		return content
	}
	return g.restore.Replace(content)
}
