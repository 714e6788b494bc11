// rebrand.yaml: optional overrides of the config dir layout.
//
// A config dir normally relies on the fixed file names below. When a
// rebrand.yaml exists in the config dir, any field it sets replaces the
// corresponding default. Relative paths are resolved against the config dir,
// except BrandingTarget which is relative to the Chromium source dir.

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// Layout names the files of a config dir.
type Layout struct {
	// Branding is the key=value file merged into BrandingTarget.
	Branding string `yaml:"branding,omitempty"`
	// BrandingTarget is the BRANDING file inside the Chromium tree.
	BrandingTarget string `yaml:"branding_target,omitempty"`
	// GRDFiles lists GRD manifests to rewrite, relative to the Chromium tree.
	GRDFiles string `yaml:"grd_files,omitempty"`
	// GRDFilter is the filter map for GRD, GRDP and XTB files.
	GRDFilter string `yaml:"grd_filter,omitempty"`
	// GRDReserved lists literals protected from GRD substitution.
	GRDReserved string `yaml:"grd_reserved,omitempty"`
	// SrcFiles lists plain source files to rewrite.
	SrcFiles string `yaml:"src_files,omitempty"`
	// SrcFilter is the filter map for plain source files.
	SrcFilter string `yaml:"src_filter,omitempty"`
	// ResDir holds resources copied over the Chromium tree.
	ResDir string `yaml:"res_dir,omitempty"`
}

// LayoutFileName is the optional layout override file in a config dir.
const LayoutFileName = "rebrand.yaml"

// DefaultLayout returns the standard config dir layout.
func DefaultLayout() Layout {
	return Layout{
		Branding:       "BRANDING",
		BrandingTarget: "chrome/app/theme/chromium/BRANDING",
		GRDFiles:       "grd_files.txt",
		GRDFilter:      "grd_filter.map",
		GRDReserved:    "grd_reserved.txt",
		SrcFiles:       "src_files.txt",
		SrcFilter:      "src_filter.map",
		ResDir:         "res",
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// LoadLayout returns the layout of configDir: the defaults, overridden by
// rebrand.yaml when present, with config paths made absolute.
func LoadLayout(configDir string) (Layout, error) {
	l := DefaultLayout()

	path := filepath.Join(configDir, LayoutFileName)
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var over Layout
		if err := yaml.Unmarshal(data, &over); err != nil {
			return Layout{}, fmt.Errorf("parsing %s: %w", path, err)
		}
		l.merge(over)
	case !os.IsNotExist(err):
		return Layout{}, fmt.Errorf("reading %s: %w", path, err)
	}

	for _, p := range []*string{&l.Branding, &l.GRDFiles, &l.GRDFilter, &l.GRDReserved, &l.SrcFiles, &l.SrcFilter, &l.ResDir} {
		*p = resolve(configDir, *p)
	}
	return l, nil
}

func (l *Layout) merge(over Layout) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&l.Branding, over.Branding)
	set(&l.BrandingTarget, over.BrandingTarget)
	set(&l.GRDFiles, over.GRDFiles)
	set(&l.GRDFilter, over.GRDFilter)
	set(&l.GRDReserved, over.GRDReserved)
	set(&l.SrcFiles, over.SrcFiles)
	set(&l.SrcFilter, over.SrcFilter)
	set(&l.ResDir, over.ResDir)
}

func resolve(dir, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// BrandingTargetPath returns the absolute BRANDING path inside chromeSrc.
func (l Layout) BrandingTargetPath(chromeSrc string) string {
	return resolve(chromeSrc, l.BrandingTarget)
}
