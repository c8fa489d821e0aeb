package rewrite

import (
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/rs/zerolog"
)

// DetailPanic holds the recovered value when a transform panics
const DetailPanic = "panic"

// TransformFunc returns the new full content of a file. basePath is the
// build output directory the file was resolved against.
type TransformFunc func(content string, basePath string) string

// Rule rewrites one file
type Rule struct {
	// File is resolved relative to the run's output directory
	File string

	Transform TransformFunc
}

type options struct {
	dryRun bool
	logger zerolog.Logger
}

// Option configures ModifyFile and ProcessRewrite
type Option func(*options)

// WithDryRun runs transforms but skips writing the results
func WithDryRun(dryRun bool) Option {
	return func(o *options) { o.dryRun = dryRun }
}

// WithLogger sets the logger used for rewrite diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func newOptions(opts []Option) options {
	o := options{logger: logging.GetLogger("rewrite")}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
