package config

import (
	"regexp"

	perrors "github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/pipeline"
	"github.com/arthur-debert/subpack/pkg/rewrite"
)

// Rules compiles the declared rewrites. Literal replacements run before
// regexp replacements within each file.
func (c *Config) Rules() ([]rewrite.Rule, error) {
	rules := make([]rewrite.Rule, 0, len(c.Rewrite))
	for _, rw := range c.Rewrite {
		transforms := make([]rewrite.TransformFunc, 0, len(rw.Replace)+len(rw.Regexp))
		for _, r := range rw.Replace {
			transforms = append(transforms, rewrite.Replace(r.Old, r.New))
		}
		for _, r := range rw.Regexp {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, perrors.Wrapf(err, perrors.ErrConfigValid, "invalid regexp for %s", rw.File).
					WithDetail(perrors.DetailPath, rw.File).
					WithDetail("pattern", r.Pattern)
			}
			transforms = append(transforms, rewrite.RegexpReplace(re, r.Replace))
		}
		rules = append(rules, rewrite.Rule{
			File:      rw.File,
			Transform: rewrite.Chain(transforms...),
		})
	}
	return rules, nil
}

// PipelineOptions returns the pipeline inputs and settings described by the
// configuration. Collaborators such as the executor or recorder are added by
// the caller.
func (c *Config) PipelineOptions() (pipeline.Options, []pipeline.Option, error) {
	rules, err := c.Rules()
	if err != nil {
		return pipeline.Options{}, nil, err
	}

	opts := pipeline.Options{
		RootDir:       c.RootDir,
		SubpackageDir: c.SubpackageDir,
		Rewrite:       rules,
	}

	var settings []pipeline.Option
	if c.Platform != "" {
		settings = append(settings, pipeline.WithPlatform(c.Platform))
	}
	if c.Rsync.Binary != "" {
		settings = append(settings, pipeline.WithRsyncBinary(c.Rsync.Binary))
	}
	settings = append(settings, pipeline.WithDryRun(c.DryRun))

	return opts, settings, nil
}
