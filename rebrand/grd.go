package rebrand

import (
	"context"
	"errors"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/minios-linux/rebrand/brand"
	"github.com/minios-linux/rebrand/filtermap"
	"github.com/minios-linux/rebrand/guard"
	"github.com/minios-linux/rebrand/manifest"
	"github.com/minios-linux/rebrand/pattern"
	"github.com/minios-linux/rebrand/rewrite"
	"github.com/minios-linux/rebrand/snapshot"
	"github.com/minios-linux/rebrand/tranid"
)

// grdJob is the shared state of one FilterGRD pass.
type grdJob struct {
	filters *filtermap.Map
	brands  *brand.Lookup
	guard   *guard.Guard
}

// FilterGRD rewrites every manifest listed in grd_files together with its
// parts and bundles, then carries changed translation ids into the bundles.
// Manifests are independent and run up to Jobs at a time.
func (r *Runner) FilterGRD(ctx context.Context, defaults pattern.Brand) error {
	filters, err := r.readMap(r.layout.GRDFilter)
	if err != nil {
		return err
	}
	brands, err := brand.Load(r.cfg, defaults)
	if err != nil {
		return err
	}
	g, err := guard.LoadFile(r.layout.GRDReserved)
	if errors.Is(err, os.ErrNotExist) {
		g, err = guard.New(nil), nil
	}
	if err != nil {
		return err
	}
	files, err := r.readList(r.layout.GRDFiles)
	if err != nil {
		return err
	}

	job := &grdJob{filters: filters, brands: brands, guard: g}
	r.log.Debug().
		Int("manifests", len(files)).
		Int("reserved", g.Len()).
		Strs("locales", brands.Locales()).
		Msg("filter grd")

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.jobs)
	for _, rel := range files {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.filterManifest(job, r.abs(rel))
		})
	}
	return eg.Wait()
}

func (r *Runner) filterManifest(job *grdJob, path string) error {
	if !exists(path) {
		r.missing(path)
		return nil
	}

	if err := snapshot.Take(path); err != nil {
		return err
	}
	if err := r.filterMarkup(job, path); err != nil {
		return err
	}

	m, err := manifest.ParseFile(path)
	if err != nil {
		r.log.Error().Err(err).Str("file", r.rel(path)).Msg("manifest unreadable, snapshots kept")
		r.count(func(s *Summary) { s.Failed++ })
		return nil
	}

	for _, part := range m.Parts {
		if !exists(part) {
			r.missing(part)
			continue
		}
		if err := snapshot.Take(part); err != nil {
			return err
		}
		if err := r.filterMarkup(job, part); err != nil {
			return err
		}
	}
	for _, b := range m.Bundles {
		if !exists(b) {
			r.missing(b)
			continue
		}
		if err := r.filterMarkup(job, b); err != nil {
			return err
		}
	}

	remap, err := rewrite.ReconcileAndApply(m.Files(), m.Bundles, r.log.With().Str("manifest", r.rel(path)).Logger())
	if err != nil {
		if errors.Is(err, tranid.ErrIdentifierListMismatch) {
			r.log.Error().Err(err).Str("file", r.rel(path)).Msg("translation ids not reconciled, snapshots kept")
			r.count(func(s *Summary) { s.Failed++ })
			return nil
		}
		return err
	}
	r.count(func(s *Summary) { s.Renamed += len(remap) })

	return snapshot.Remove(m.Files()...)
}

// filterMarkup rewrites one GRD, GRDP or XTB file with the table for its
// path and locale.
func (r *Runner) filterMarkup(job *grdJob, path string) error {
	rel := r.rel(path)
	table, err := job.filters.Table(rel, job.brands.ForPath(path))
	if err != nil {
		return err
	}
	changed, err := rewrite.RewriteFile(path, table, job.guard)
	switch {
	case errors.Is(err, guard.ErrPlaceholderInContent):
		r.log.Error().Err(err).Str("file", rel).Msg("file left untouched")
		return nil
	case err != nil:
		return err
	}
	if !changed {
		r.count(func(s *Summary) { s.Unmodified++ })
		r.log.Debug().Str("file", rel).Msg("unchanged")
		return nil
	}
	r.count(func(s *Summary) { s.Filtered++ })
	r.log.Info().Str("file", rel).Msg("filter")
	return nil
}
