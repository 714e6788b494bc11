// Package rewrite applies substitution tables to files on disk and carries
// translation-id changes from rewritten GRD sources into their XTB bundles.
package rewrite

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"github.com/minios-linux/rebrand/guard"
	"github.com/minios-linux/rebrand/markup"
	"github.com/minios-linux/rebrand/pattern"
	"github.com/minios-linux/rebrand/snapshot"
	"github.com/minios-linux/rebrand/tranid"
	"github.com/minios-linux/rebrand/xtb"
)

// ErrMissingFile is returned when a file to rewrite does not exist. The
// returned error also matches fs.ErrNotExist.
var ErrMissingFile = errors.New("file not found")

func readExisting(path string) ([]byte, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s: %w", ErrMissingFile, path, fs.ErrNotExist)
		}
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, info.Mode().Perm(), nil
}

// Markup rewrites the translatable text of a GRD, GRDP or XTB document.
// Literals reserved by g are never substituted; g may be nil.
func Markup(content string, table pattern.Table, g *guard.Guard) (string, error) {
	if g != nil {
		var err error
		if content, err = g.Protect(content); err != nil {
			return "", err
		}
	}
	out := markup.Rewrite(content, table.ReplaceWords)
	if g != nil {
		out = g.Restore(out)
	}
	return out, nil
}

// RewriteFile rewrites the markup file at path in place. It reports whether
// the content changed; unchanged files are not written.
func RewriteFile(path string, table pattern.Table, g *guard.Guard) (bool, error) {
	data, perm, err := readExisting(path)
	if err != nil {
		return false, err
	}
	out, err := Markup(string(data), table, g)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	if out == string(data) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(out), perm); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// FilterFile applies table to the plain source file at path as literal
// substring replacements. It reports whether the content changed.
func FilterFile(path string, table pattern.Table) (bool, error) {
	data, perm, err := readExisting(path)
	if err != nil {
		return false, err
	}
	out := table.ReplaceLiteral(string(data))
	if out == string(data) {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(out), perm); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// ReconcileAndApply compares every source file (a manifest and its parts)
// with its snapshot and renames the changed translation ids in bundles.
//
// Sources without a file or snapshot are skipped with a warning, as are
// missing bundles. A message list mismatch is returned as an error wrapping
// tranid.ErrIdentifierListMismatch and no bundle is touched.
func ReconcileAndApply(sources, bundles []string, log zerolog.Logger) (tranid.Remap, error) {
	remap := make(tranid.Remap)
	for _, src := range sources {
		if _, err := os.Stat(src); err != nil {
			log.Warn().Str("file", src).Msg("source missing, skip reconcile")
			continue
		}
		if !snapshot.Exists(src) {
			log.Warn().Str("file", snapshot.Path(src)).Msg("snapshot missing, skip reconcile")
			continue
		}
		r, err := tranid.ReconcileFiles(snapshot.Path(src), src)
		if err != nil {
			return nil, err
		}
		remap.Merge(r)
	}
	if len(remap) == 0 {
		return remap, nil
	}

	for _, b := range bundles {
		if _, err := os.Stat(b); err != nil {
			log.Warn().Str("file", b).Msg("bundle missing")
			continue
		}
		res, err := xtb.RewriteFile(b, remap)
		if err != nil {
			return remap, err
		}
		if res.Changed() {
			log.Info().Str("file", b).Int("renamed", res.Renamed).Int("dropped", res.Dropped).Msg("replace tranid")
		}
	}
	return remap, nil
}
