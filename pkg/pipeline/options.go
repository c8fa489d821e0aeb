package pipeline

import (
	"github.com/arthur-debert/subpack/pkg/filesystem"
	"github.com/arthur-debert/subpack/pkg/metrics"
	"github.com/arthur-debert/subpack/pkg/rewrite"
	"github.com/arthur-debert/subpack/pkg/rsync"
	"github.com/rs/zerolog"
)

// PlatformWeixin is the platform the pipeline supports by default
const PlatformWeixin = "mp-weixin"

// Options holds the required pipeline inputs
type Options struct {
	// RootDir is the native project root
	RootDir string

	// SubpackageDir is the subpackage location inside RootDir. The output
	// directory is mirrored into its parent.
	SubpackageDir string

	// Rewrite rules applied to the output before mirroring
	Rewrite []rewrite.Rule
}

// Option configures optional pipeline collaborators and settings
type Option func(*Pipeline)

// WithPlatform overrides the platform identifier the gate accepts
func WithPlatform(platform string) Option {
	return func(p *Pipeline) { p.platform = platform }
}

// WithDryRun skips file writes and runs rsync with --dry-run
func WithDryRun(dryRun bool) Option {
	return func(p *Pipeline) { p.dryRun = dryRun }
}

// WithFS sets the filesystem used for rewrites
func WithFS(fsys filesystem.FS) Option {
	return func(p *Pipeline) { p.fs = fsys }
}

// WithExecutor sets the executor used to run rsync
func WithExecutor(exec rsync.Executor) Option {
	return func(p *Pipeline) { p.exec = exec }
}

// WithRsyncBinary overrides the rsync executable
func WithRsyncBinary(path string) Option {
	return func(p *Pipeline) { p.rsyncBinary = path }
}

// WithRecorder sets the metrics recorder
func WithRecorder(rec metrics.Recorder) Option {
	return func(p *Pipeline) { p.recorder = rec }
}

// WithLogger sets the pipeline logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}
