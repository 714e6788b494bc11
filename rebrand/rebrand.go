// Package rebrand runs a full rebrand of a Chromium source tree from a config
// dir: it updates the BRANDING file, rewrites the configured GRD manifests
// with their parts and bundles, filters plain source files and copies
// resources over the tree.
package rebrand

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/minios-linux/rebrand/config"
	"github.com/minios-linux/rebrand/filtermap"
	"github.com/minios-linux/rebrand/propfile"
)

// Options configures a Runner.
type Options struct {
	// ChromeSrc is the root of the Chromium checkout.
	ChromeSrc string
	// ConfigDir holds BRANDING, the file lists and the filter maps.
	ConfigDir string
	// Layout names the files of ConfigDir. Nil means
	// config.LoadLayout(ConfigDir).
	Layout *config.Layout
	// Jobs bounds how many manifests are processed at once. Values below 1
	// mean one.
	Jobs int
	// Logger receives progress and diagnostics.
	Logger zerolog.Logger
}

// Summary counts what a run did.
type Summary struct {
	Filtered   int // GRD, GRDP, XTB and source files rewritten
	Renamed    int // translation ids remapped after rewriting
	Failed     int // manifests whose ids could not be reconciled
	Missing    int // referenced files that did not exist
	Copied     int // resource files copied
	Unmodified int // files whose content did not change
}

// Runner performs a rebrand.
type Runner struct {
	src    string
	cfg    string
	layout config.Layout
	jobs   int
	log    zerolog.Logger

	mu  sync.Mutex
	sum Summary
}

// New validates opts and returns a Runner.
func New(opts Options) (*Runner, error) {
	if !config.IsChromeSrc(opts.ChromeSrc) {
		return nil, fmt.Errorf("%w: %s has no %s", config.ErrNoChromeSrc, opts.ChromeSrc, config.VersionFile)
	}
	if !config.IsDir(opts.ConfigDir) {
		return nil, fmt.Errorf("config dir %s: %w", opts.ConfigDir, os.ErrNotExist)
	}

	var layout config.Layout
	if opts.Layout != nil {
		layout = *opts.Layout
	} else {
		var err error
		if layout, err = config.LoadLayout(opts.ConfigDir); err != nil {
			return nil, err
		}
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Runner{
		src:    opts.ChromeSrc,
		cfg:    opts.ConfigDir,
		layout: layout,
		jobs:   jobs,
		log:    opts.Logger,
	}, nil
}

// Run executes every step in order. A malformed config file or a failed
// write aborts the run; missing files and reconciliation failures are
// logged and counted.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	defaults, err := r.UpdateBranding()
	if err != nil {
		return r.summary(), err
	}
	if err := r.FilterGRD(ctx, defaults); err != nil {
		return r.summary(), err
	}
	if err := ctx.Err(); err != nil {
		return r.summary(), err
	}
	if err := r.FilterSources(defaults); err != nil {
		return r.summary(), err
	}
	if err := r.CopyResources(); err != nil {
		return r.summary(), err
	}
	return r.summary(), nil
}

func (r *Runner) summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sum
}

func (r *Runner) count(fn func(s *Summary)) {
	r.mu.Lock()
	fn(&r.sum)
	r.mu.Unlock()
}

// rel returns path relative to the Chromium root in slash form, the key
// used by filter map sections.
func (r *Runner) rel(path string) string {
	rel, err := filepath.Rel(r.src, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (r *Runner) abs(rel string) string {
	return filepath.Join(r.src, filepath.FromSlash(rel))
}

func (r *Runner) missing(path string) {
	r.log.Warn().Str("file", path).Msg("no such file")
	r.count(func(s *Summary) { s.Missing++ })
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// readList reads a config list file. A missing list is an empty list.
func (r *Runner) readList(path string) ([]string, error) {
	items, err := propfile.ReadList(path)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Warn().Str("file", path).Msg("list file missing, nothing to do")
		return nil, nil
	}
	return items, err
}

// readMap parses a filter map. A missing map is an empty map; a malformed
// one is returned as *filtermap.SyntaxError.
func (r *Runner) readMap(path string) (*filtermap.Map, error) {
	m, err := filtermap.ParseFile(path)
	if errors.Is(err, os.ErrNotExist) {
		r.log.Warn().Str("file", path).Msg("filter map missing, using an empty map")
		return filtermap.Parse(path, nil)
	}
	return m, err
}
