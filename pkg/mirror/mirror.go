// Package mirror copies a build output directory into a native project
// tree with rsync, removing destination files that no longer exist in the
// output.
package mirror

import (
	"context"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/arthur-debert/subpack/pkg/rsync"
	"github.com/rs/zerolog"
)

type options struct {
	executable string
	dryRun     bool
	logger     zerolog.Logger
}

// Option configures SyncFiles
type Option func(*options)

// WithExecutable overrides the rsync binary
func WithExecutable(path string) Option {
	return func(o *options) { o.executable = path }
}

// WithDryRun passes --dry-run to rsync
func WithDryRun(dryRun bool) Option {
	return func(o *options) { o.dryRun = dryRun }
}

// WithLogger sets the logger used for sync diagnostics
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Destination returns the directory the output is mirrored into: the
// parent of subpackagePath under targetRootDir. rsync then creates the
// source's own basename inside it.
func Destination(targetRootDir, subpackagePath string) string {
	return paths.FullPath(targetRootDir, paths.DirPath(subpackagePath))
}

// SyncFiles mirrors sourcePath into targetRootDir/dirname(subpackagePath)
// with a single rsync run and returns the executed command line.
func SyncFiles(ctx context.Context, exec rsync.Executor, sourcePath, targetRootDir, subpackagePath string, opts ...Option) (string, error) {
	o := options{logger: logging.GetLogger("mirror")}
	for _, opt := range opts {
		opt(&o)
	}

	src := paths.FullPath(sourcePath)
	dst := Destination(targetRootDir, subpackagePath)

	cmd := rsync.Mirror(src, dst)
	cmd.DryRun = o.dryRun
	if o.executable != "" {
		cmd.Executable = o.executable
	}
	cmdLine := cmd.String()

	exitCode, err := exec.Execute(ctx, cmd)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrSyncFailed, "failed to sync files from %s to %s", src, dst).
			WithDetail(errors.DetailError, err).
			WithDetail(errors.DetailExitCode, exitCode).
			WithDetail(errors.DetailCommand, cmdLine)
	}

	o.logger.Info().
		Str("source", src).
		Str("destination", dst).
		Str("command", cmdLine).
		Msg("Files synced")

	return cmdLine, nil
}
