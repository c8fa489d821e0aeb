package rewrite

import (
	"github.com/arthur-debert/subpack/pkg/filesystem"
	"golang.org/x/sync/errgroup"
)

// ProcessRewrite applies every rule against basePath concurrently.
//
// It returns after all rules have settled. When rules fail, the error of
// the first one to fail is returned; the others are only logged. Rules are
// never cancelled, so a failed call may still have rewritten some files.
func ProcessRewrite(fsys filesystem.FS, rules []Rule, basePath string, opts ...Option) error {
	if len(rules) == 0 {
		return nil
	}

	o := newOptions(opts)

	var g errgroup.Group
	for _, rule := range rules {
		rule := rule
		g.Go(func() error {
			err := ModifyFile(fsys, rule.File, rule.Transform, basePath, opts...)
			if err != nil {
				o.logger.Debug().Err(err).Str("file", rule.File).Msg("Rewrite rule failed")
			}
			return err
		})
	}

	return g.Wait()
}
