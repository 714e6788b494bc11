// Package pattern builds the ordered substitution table applied to a single
// file during a rebrand pass.
//
// A table is assembled from the default entries of a filter map plus the
// entries of the section keyed by the file's path. Entries are applied one
// at a time in table order, each as its own pass over the text, so a later
// entry may re-match text produced by an earlier one. That cascading is
// intentional and must not be "fixed" into a simultaneous substitution.
package pattern

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholders that may appear inside replacement values. They are resolved
// against the Brand of the file being processed.
const (
	CompanyFullNameVar = "${company_fullname}"
	ProductFullNameVar = "${product_fullname}"
)

// Entry is a single key → value substitution.
type Entry struct {
	Key   string
	Value string
}

// Brand holds the per-file names that replacement values may reference.
type Brand struct {
	CompanyFullName string
	ProductFullName string
}

// Expand resolves the brand placeholders in value.
func (b Brand) Expand(value string) string {
	value = strings.ReplaceAll(value, CompanyFullNameVar, b.CompanyFullName)
	return strings.ReplaceAll(value, ProductFullNameVar, b.ProductFullName)
}

// rule is a compiled table entry.
type rule struct {
	Entry
	word    *regexp.Regexp // \bKEY\b
	literal *regexp.Regexp // KEY
}

// Table is an ordered, compiled substitution list. The zero value is an
// empty table that leaves every input unchanged.
type Table struct {
	rules []rule
}

// Build merges defaults and overrides into a table and expands brand
// placeholders in every value.
//
// An override whose key already exists replaces that entry's value in place;
// any other override is appended after the defaults. Entries with an empty
// key are dropped since they can never match anything.
func Build(defaults, overrides []Entry, b Brand) (Table, error) {
	var t Table
	index := make(map[string]int, len(defaults)+len(overrides))

	add := func(e Entry) error {
		if e.Key == "" {
			return nil
		}
		value := b.Expand(e.Value)
		if i, ok := index[e.Key]; ok {
			t.rules[i].Value = value
			return nil
		}
		r, err := compile(Entry{Key: e.Key, Value: value})
		if err != nil {
			return err
		}
		index[e.Key] = len(t.rules)
		t.rules = append(t.rules, r)
		return nil
	}

	for _, e := range defaults {
		if err := add(e); err != nil {
			return Table{}, err
		}
	}
	for _, e := range overrides {
		if err := add(e); err != nil {
			return Table{}, err
		}
	}
	return t, nil
}

func compile(e Entry) (rule, error) {
	quoted := regexp.QuoteMeta(e.Key)
	word, err := regexp.Compile(`\b` + quoted + `\b`)
	if err != nil {
		return rule{}, fmt.Errorf("compiling pattern for %q: %w", e.Key, err)
	}
	return rule{
		Entry:   e,
		word:    word,
		literal: regexp.MustCompile(quoted),
	}, nil
}

// Len returns the number of entries in the table.
func (t Table) Len() int { return len(t.rules) }

// Entries returns the table entries in application order, with brand
// placeholders already expanded.
func (t Table) Entries() []Entry {
	out := make([]Entry, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Entry
	}
	return out
}

// ReplaceWords applies every entry in order, matching each key only as a
// whole word. This is the substitution used inside translatable markup.
func (t Table) ReplaceWords(text string) string {
	for _, r := range t.rules {
		text = r.word.ReplaceAllLiteralString(text, r.Value)
	}
	return text
}

// ReplaceLiteral applies every entry in order, matching each key anywhere in
// text. This is the substitution used for plain source files.
func (t Table) ReplaceLiteral(text string) string {
	for _, r := range t.rules {
		text = r.literal.ReplaceAllLiteralString(text, r.Value)
	}
	return text
}
