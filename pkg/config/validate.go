package config

import (
	perrors "github.com/arthur-debert/subpack/pkg/errors"
)

// Validate checks settings that cannot be caught while decoding. Missing
// root or subpackage directories are left to the pipeline, which reports
// them as MISSING_CONFIG.
func (c *Config) Validate() error {
	if c.Watch.Debounce < 0 {
		return perrors.Newf(perrors.ErrConfigValid, "watch.debounce must not be negative, got %s", c.Watch.Debounce).
			WithDetail("key", "watch.debounce")
	}

	for i, rw := range c.Rewrite {
		if rw.File == "" {
			return perrors.Newf(perrors.ErrConfigValid, "rewrite[%d]: file is required", i).
				WithDetail("key", "rewrite")
		}
		if len(rw.Replace) == 0 && len(rw.Regexp) == 0 {
			return perrors.Newf(perrors.ErrConfigValid, "rewrite[%d] (%s): no replace or regexp entries", i, rw.File).
				WithDetail(perrors.DetailPath, rw.File)
		}
		for j, r := range rw.Replace {
			if r.Old == "" {
				return perrors.Newf(perrors.ErrConfigValid, "rewrite[%d].replace[%d]: old must not be empty", i, j).
					WithDetail(perrors.DetailPath, rw.File)
			}
		}
		for j, r := range rw.Regexp {
			if r.Pattern == "" {
				return perrors.Newf(perrors.ErrConfigValid, "rewrite[%d].regexp[%d]: pattern must not be empty", i, j).
					WithDetail(perrors.DetailPath, rw.File)
			}
		}
	}

	return nil
}
