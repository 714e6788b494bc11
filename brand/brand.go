// Package brand resolves the company and product names used in a file's
// substitution table.
//
// The default names come from the merged BRANDING file. A config dir may
// also hold BRANDING_<locale> tables; an XTB bundle named *_<locale>.xtb
// uses the table of its locale when one exists.
package brand

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/minios-linux/rebrand/langmeta"
	"github.com/minios-linux/rebrand/pattern"
	"github.com/minios-linux/rebrand/propfile"
)

// Keys read from branding tables.
const (
	CompanyFullNameKey = "COMPANY_FULLNAME"
	ProductFullNameKey = "PRODUCT_FULLNAME"
)

// LocalePrefix prefixes the names of per-locale branding files.
const LocalePrefix = "BRANDING_"

// FromMap reads the brand names of a branding table.
func FromMap(m map[string]string) pattern.Brand {
	return pattern.Brand{
		CompanyFullName: m[CompanyFullNameKey],
		ProductFullName: m[ProductFullNameKey],
	}
}

// Lookup maps files to brand names.
type Lookup struct {
	defaults pattern.Brand
	locales  map[string]pattern.Brand
}

// NewLookup returns a lookup with the given default and per-locale names.
func NewLookup(defaults pattern.Brand, locales map[string]pattern.Brand) *Lookup {
	if locales == nil {
		locales = make(map[string]pattern.Brand)
	}
	return &Lookup{defaults: defaults, locales: locales}
}

// Load reads every BRANDING_<locale> file of configDir.
func Load(configDir string, defaults pattern.Brand) (*Lookup, error) {
	entries, err := os.ReadDir(configDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", configDir, err)
	}

	l := NewLookup(defaults, nil)
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || !strings.HasPrefix(name, LocalePrefix) || len(name) == len(LocalePrefix) {
			continue
		}
		f, err := propfile.ParseFile(filepath.Join(configDir, name))
		if err != nil {
			return nil, err
		}
		l.locales[strings.TrimPrefix(name, LocalePrefix)] = FromMap(f.Map())
	}
	return l, nil
}

// Default returns the default brand names.
func (l *Lookup) Default() pattern.Brand { return l.defaults }

// Locales returns the locales that have their own table, sorted.
func (l *Lookup) Locales() []string {
	locales := make([]string, 0, len(l.locales))
	for k := range l.locales {
		locales = append(locales, k)
	}
	sort.Strings(locales)
	return locales
}

// ForLocale returns the names for locale, falling back from the exact code
// through its canonical and base forms to the defaults. A name missing from
// the locale table is taken from the defaults.
func (l *Lookup) ForLocale(locale string) pattern.Brand {
	for _, c := range langmeta.Candidates(locale) {
		b, ok := l.locales[c]
		if !ok {
			continue
		}
		if b.CompanyFullName == "" {
			b.CompanyFullName = l.defaults.CompanyFullName
		}
		if b.ProductFullName == "" {
			b.ProductFullName = l.defaults.ProductFullName
		}
		return b
	}
	return l.defaults
}

// ForPath returns the names for the file at path. Only XTB bundles named
// *_<locale>.xtb use a locale table.
func (l *Lookup) ForPath(path string) pattern.Brand {
	if locale, ok := langmeta.FromBundlePath(path); ok {
		return l.ForLocale(locale)
	}
	return l.defaults
}
