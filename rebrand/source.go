package rebrand

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/minios-linux/rebrand/config"
	"github.com/minios-linux/rebrand/pattern"
	"github.com/minios-linux/rebrand/rewrite"
	"github.com/minios-linux/rebrand/snapshot"
)

// FilterSources applies src_filter to every file listed in src_files as
// plain literal replacement, using the default brand names.
func (r *Runner) FilterSources(defaults pattern.Brand) error {
	filters, err := r.readMap(r.layout.SrcFilter)
	if err != nil {
		return err
	}
	files, err := r.readList(r.layout.SrcFiles)
	if err != nil {
		return err
	}

	for _, rel := range files {
		path := r.abs(rel)
		table, err := filters.Table(r.rel(path), defaults)
		if err != nil {
			return err
		}
		changed, err := rewrite.FilterFile(path, table)
		switch {
		case errors.Is(err, rewrite.ErrMissingFile):
			r.missing(path)
			continue
		case err != nil:
			return err
		}
		if !changed {
			r.count(func(s *Summary) { s.Unmodified++ })
			r.log.Debug().Str("file", r.rel(path)).Msg("unchanged")
			continue
		}
		r.count(func(s *Summary) { s.Filtered++ })
		r.log.Info().Str("file", r.rel(path)).Msg("filter")
	}
	return nil
}

// CopyResources copies every file under the res dir over the file with the
// same relative path in the tree. Hidden entries are skipped, and a file is
// copied only when its target already exists.
func (r *Runner) CopyResources() error {
	res := r.layout.ResDir
	if !config.IsDir(res) {
		r.log.Warn().Str("dir", res).Msg("res dir not exists")
		return nil
	}

	files, err := ListResources(res)
	if err != nil {
		return err
	}
	for _, rel := range files {
		target := r.abs(rel)
		if !exists(target) {
			r.missing(target)
			continue
		}
		if err := snapshot.Copy(filepath.Join(res, filepath.FromSlash(rel)), target); err != nil {
			return err
		}
		r.count(func(s *Summary) { s.Copied++ })
		r.log.Info().Str("file", rel).Msg("copy")
	}
	return nil
}

// ListResources returns the regular files under dir as sorted slash paths
// relative to dir. Entries whose name starts with a dot are skipped along
// with everything below them.
func ListResources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == dir {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return files, nil
}
