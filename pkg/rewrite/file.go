package rewrite

import (
	"fmt"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/filesystem"
	"github.com/arthur-debert/subpack/pkg/paths"
)

// ModifyFile reads file (relative to basePath), passes its content through
// transform and writes the result back over the same path. The write goes
// through a temp file and a rename, so a failed write leaves the original
// content in place.
func ModifyFile(fsys filesystem.FS, file string, transform TransformFunc, basePath string, opts ...Option) error {
	o := newOptions(opts)
	fullPath := paths.FullPath(basePath, file)
	logger := o.logger.With().Str("file", fullPath).Logger()

	if transform == nil {
		return errors.Newf(errors.ErrRewriteFailed, "no transform given for file %s", fullPath).
			WithDetail(errors.DetailPath, fullPath)
	}

	info, err := fsys.Stat(fullPath)
	if err != nil {
		return rewriteFailed(err, fullPath)
	}

	content, err := fsys.ReadFile(fullPath)
	if err != nil {
		return rewriteFailed(err, fullPath)
	}

	modified, err := applyTransform(transform, string(content), basePath, fullPath)
	if err != nil {
		return err
	}

	if o.dryRun {
		logger.Info().
			Int("before", len(content)).
			Int("after", len(modified)).
			Msg("Dry run - rewrite not written")
		return nil
	}

	if err := filesystem.WriteFileAtomic(fsys, fullPath, []byte(modified), info.Mode().Perm()); err != nil {
		return rewriteFailed(err, fullPath)
	}

	logger.Debug().Int("bytes", len(modified)).Msg("File rewritten")
	return nil
}

// applyTransform runs transform and turns a panic into REWRITE_FAILED
func applyTransform(transform TransformFunc, content, basePath, fullPath string) (modified string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf(errors.ErrRewriteFailed, "transform for file %s panicked: %v", fullPath, r).
				WithDetail(errors.DetailPath, fullPath).
				WithDetail(errors.DetailError, fmt.Sprint(r)).
				WithDetail(DetailPanic, r)
		}
	}()
	return transform(content, basePath), nil
}

func rewriteFailed(err error, fullPath string) error {
	return errors.Wrapf(err, errors.ErrRewriteFailed, "failed to modify file %s", fullPath).
		WithDetail(errors.DetailPath, fullPath).
		WithDetail(errors.DetailError, err)
}
