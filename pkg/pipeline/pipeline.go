package pipeline

import (
	"context"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/filesystem"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/metrics"
	"github.com/arthur-debert/subpack/pkg/mirror"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/arthur-debert/subpack/pkg/rewrite"
	"github.com/arthur-debert/subpack/pkg/rsync"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pipeline rewrites and mirrors one build output
type Pipeline struct {
	rootDir       string
	subpackageDir string
	rules         []rewrite.Rule

	platform    string
	dryRun      bool
	rsyncBinary string

	fs       filesystem.FS
	exec     rsync.Executor
	recorder metrics.Recorder
	logger   zerolog.Logger

	active atomic.Bool
}

// run is the state of a single Run call
type run struct {
	id         string
	outputPath string
}

// New creates a pipeline. It returns a MISSING_CONFIG error when RootDir or
// SubpackageDir is empty.
func New(opts Options, options ...Option) (*Pipeline, error) {
	if opts.RootDir == "" || opts.SubpackageDir == "" {
		return nil, errors.New(errors.ErrMissingConfig, "rootDir and subpackageDir are required")
	}

	p := &Pipeline{
		rootDir:       opts.RootDir,
		subpackageDir: opts.SubpackageDir,
		rules:         append([]rewrite.Rule(nil), opts.Rewrite...),
		platform:      PlatformWeixin,
		recorder:      metrics.NoopRecorder{},
		logger:        logging.GetLogger("pipeline"),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.fs == nil {
		p.fs = filesystem.NewOS()
	}
	if p.exec == nil {
		p.exec = rsync.NewExecExecutor()
	}

	return p, nil
}

// Gate records whether the current build targets the supported platform.
// The identifier may be JSON-quoted, as bundler define values are.
func (p *Pipeline) Gate(platform string) {
	active := normalizePlatform(platform) == p.platform
	p.active.Store(active)

	p.logger.Debug().
		Str("platform", platform).
		Str("expected", p.platform).
		Bool("active", active).
		Msg("Platform gate evaluated")
}

// Active reports whether the last Gate call matched
func (p *Pipeline) Active() bool {
	return p.active.Load()
}

// Run rewrites the configured files in outputDir and then mirrors
// outputDir into the native project. It does nothing when the gate did not
// pass or outputDir is empty. Errors are *errors.PipelineError values.
func (p *Pipeline) Run(ctx context.Context, outputDir string) error {
	if !p.Active() || outputDir == "" {
		p.logger.Debug().
			Bool("active", p.Active()).
			Str("outputDir", outputDir).
			Msg("Pipeline skipped")
		p.recorder.IncRunOutcome(metrics.OutcomeSkipped)
		return nil
	}

	r := run{
		id:         uuid.NewString(),
		outputPath: paths.FullPath(outputDir),
	}
	logger := p.logger.With().Str("run", r.id).Str("output", r.outputPath).Logger()

	start := time.Now()
	err := p.execute(ctx, r, logger)
	p.recorder.ObserveRunDuration(time.Since(start))

	if err != nil {
		p.recorder.IncRunOutcome(strings.ToLower(string(errors.GetErrorCode(err))))
		logger.Error().Err(err).Msg("Pipeline run failed")
		return err
	}

	p.recorder.IncRunOutcome(metrics.OutcomeSuccess)
	logger.Info().Dur("duration", time.Since(start)).Msg("Pipeline run completed")
	return nil
}

func (p *Pipeline) execute(ctx context.Context, r run, logger zerolog.Logger) error {
	if err := p.rewrite(r, logger); err != nil {
		return err
	}
	return p.sync(ctx, r, logger)
}

func (p *Pipeline) rewrite(r run, logger zerolog.Logger) error {
	done := logging.LogOperationStart(logger, metrics.StageRewrite)
	defer done()

	start := time.Now()
	defer func() { p.recorder.ObserveStageDuration(metrics.StageRewrite, time.Since(start)) }()
	p.recorder.SetRewriteRules(len(p.rules))

	return rewrite.ProcessRewrite(p.fs, p.rules, r.outputPath,
		rewrite.WithDryRun(p.dryRun),
		rewrite.WithLogger(logger),
	)
}

func (p *Pipeline) sync(ctx context.Context, r run, logger zerolog.Logger) error {
	done := logging.LogOperationStart(logger, metrics.StageSync)
	defer done()

	start := time.Now()
	defer func() { p.recorder.ObserveStageDuration(metrics.StageSync, time.Since(start)) }()

	_, err := mirror.SyncFiles(ctx, p.exec, r.outputPath, p.rootDir, p.subpackageDir,
		mirror.WithDryRun(p.dryRun),
		mirror.WithExecutable(p.rsyncBinary),
		mirror.WithLogger(logger),
	)
	return err
}

func normalizePlatform(platform string) string {
	platform = strings.TrimSpace(platform)
	if unquoted, err := strconv.Unquote(platform); err == nil {
		return unquoted
	}
	return platform
}
