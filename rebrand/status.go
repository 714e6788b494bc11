package rebrand

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/minios-linux/rebrand/brand"
	"github.com/minios-linux/rebrand/config"
	"github.com/minios-linux/rebrand/filtermap"
	"github.com/minios-linux/rebrand/guard"
	"github.com/minios-linux/rebrand/propfile"
)

// MapStatus describes a parsed filter map.
type MapStatus struct {
	Path     string
	Present  bool
	Defaults int
	Sections int
}

// ListStatus describes a file list and which of its entries are missing
// from the tree.
type ListStatus struct {
	Path    string
	Present bool
	Files   int
	Missing []string
}

// Status is a read-only view of a config dir against a tree.
type Status struct {
	ChromeSrc string
	ConfigDir string
	Brand     map[string]string
	Locales   []string
	Reserved  int
	GRDFilter MapStatus
	SrcFilter MapStatus
	GRDFiles  ListStatus
	SrcFiles  ListStatus
	Resources int
}

// Inspect parses every file of the config dir without modifying anything.
// Malformed filter maps are returned as errors.
func (r *Runner) Inspect() (*Status, error) {
	st := &Status{ChromeSrc: r.src, ConfigDir: r.cfg}

	branding, err := propfile.ParseFile(r.layout.Branding)
	switch {
	case err == nil:
		st.Brand = branding.Map()
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	brands, err := brand.Load(r.cfg, brand.FromMap(st.Brand))
	if err != nil {
		return nil, err
	}
	st.Locales = brands.Locales()

	g, err := guard.LoadFile(r.layout.GRDReserved)
	switch {
	case err == nil:
		st.Reserved = g.Len()
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}

	if st.GRDFilter, err = inspectMap(r.layout.GRDFilter); err != nil {
		return nil, err
	}
	if st.SrcFilter, err = inspectMap(r.layout.SrcFilter); err != nil {
		return nil, err
	}
	if st.GRDFiles, err = r.inspectList(r.layout.GRDFiles); err != nil {
		return nil, err
	}
	if st.SrcFiles, err = r.inspectList(r.layout.SrcFiles); err != nil {
		return nil, err
	}

	if config.IsDir(r.layout.ResDir) {
		files, err := ListResources(r.layout.ResDir)
		if err != nil {
			return nil, err
		}
		st.Resources = len(files)
	}
	return st, nil
}

func inspectMap(path string) (MapStatus, error) {
	ms := MapStatus{Path: path}
	m, err := filtermap.ParseFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ms, nil
	}
	if err != nil {
		return ms, err
	}
	ms.Present = true
	ms.Defaults = len(m.Defaults())
	ms.Sections = len(m.Paths())
	return ms, nil
}

func (r *Runner) inspectList(path string) (ListStatus, error) {
	ls := ListStatus{Path: path}
	files, err := propfile.ReadList(path)
	if errors.Is(err, os.ErrNotExist) {
		return ls, nil
	}
	if err != nil {
		return ls, err
	}
	ls.Present = true
	ls.Files = len(files)
	for _, rel := range files {
		if !exists(filepath.Join(r.src, filepath.FromSlash(rel))) {
			ls.Missing = append(ls.Missing, rel)
		}
	}
	return ls, nil
}
