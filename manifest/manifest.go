// Package manifest reads the file references of a GRD resource manifest.
//
// Only two things are needed from a manifest: the XTB bundles listed under
// <translations> and the GRDP part files included under <release>. Paths
// are resolved against the manifest's directory.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

var (
	bundlesExpr = xpath.MustCompile(`/grit/translations//file[@path]`)
	partsExpr   = xpath.MustCompile(`/grit/release//part[@file]`)
)

// Manifest lists the files a GRD refers to.
type Manifest struct {
	// Path is the manifest file.
	Path string
	// Bundles are the XTB translation bundles, in document order.
	Bundles []string
	// Parts are the included GRDP part files, in document order.
	Parts []string
}

// Files returns the manifest followed by its parts: every file whose
// messages determine translation ids.
func (m *Manifest) Files() []string {
	return append([]string{m.Path}, m.Parts...)
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse parses manifest content; path locates relative references.
func Parse(path string, data []byte) (*Manifest, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	m := &Manifest{Path: path}
	for _, n := range xmlquery.QuerySelectorAll(doc, bundlesExpr) {
		m.Bundles = append(m.Bundles, resolve(dir, n.SelectAttr("path")))
	}
	for _, n := range xmlquery.QuerySelectorAll(doc, partsExpr) {
		m.Parts = append(m.Parts, resolve(dir, n.SelectAttr("file")))
	}
	return m, nil
}

func resolve(dir, ref string) string {
	return filepath.Join(dir, filepath.FromSlash(ref))
}
