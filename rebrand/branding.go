package rebrand

import (
	"errors"
	"os"

	"github.com/minios-linux/rebrand/brand"
	"github.com/minios-linux/rebrand/pattern"
	"github.com/minios-linux/rebrand/propfile"
)

// UpdateBranding merges the config dir's BRANDING over the tree's BRANDING
// file, writes it back and returns the merged default brand names.
// Existing keys keep their position; new keys are appended.
func (r *Runner) UpdateBranding() (pattern.Brand, error) {
	target := r.layout.BrandingTargetPath(r.src)
	current, err := propfile.ParseFile(target)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return pattern.Brand{}, err
		}
		r.missing(target)
		current = propfile.New()
	}

	override, err := propfile.ParseFile(r.layout.Branding)
	switch {
	case err == nil:
		current.Merge(override)
	case errors.Is(err, os.ErrNotExist):
		r.missing(r.layout.Branding)
	default:
		return pattern.Brand{}, err
	}

	if err := current.WriteFile(target); err != nil {
		return pattern.Brand{}, err
	}
	r.log.Info().Str("file", r.rel(target)).Msg("update")

	b := brand.FromMap(current.Map())
	if b.CompanyFullName == "" || b.ProductFullName == "" {
		r.log.Warn().
			Str("company", b.CompanyFullName).
			Str("product", b.ProductFullName).
			Msgf("%s or %s is empty", brand.CompanyFullNameKey, brand.ProductFullNameKey)
	}
	return b, nil
}
