package cli

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/metrics"
	"github.com/arthur-debert/subpack/pkg/mirror"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/arthur-debert/subpack/pkg/pipeline"
	"github.com/arthur-debert/subpack/pkg/rsync"
)

// session is a configured pipeline plus the metrics it reports
type session struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	recorder *metrics.PrometheusRecorder
	logger   zerolog.Logger
}

func newSession(cfg *config.Config, exec rsync.Executor) (*session, error) {
	opts, settings, err := cfg.PipelineOptions()
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:    cfg,
		logger: logging.GetLogger("cli"),
	}

	if exec != nil {
		settings = append(settings, pipeline.WithExecutor(exec))
	}
	if cfg.Metrics.Textfile != "" {
		s.recorder = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		settings = append(settings, pipeline.WithRecorder(s.recorder))
	}

	p, err := pipeline.New(opts, settings...)
	if err != nil {
		return nil, err
	}
	s.pipeline = p
	return s, nil
}

// gate evaluates the platform gate and reports whether runs will do work
func (s *session) gate(platform string) bool {
	s.pipeline.Gate(platform)
	return s.pipeline.Active()
}

func (s *session) run(ctx context.Context, outputDir string) error {
	err := s.pipeline.Run(ctx, outputDir)
	s.flushMetrics()
	return err
}

func (s *session) flushMetrics() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.WriteTextfile(s.cfg.Metrics.Textfile); err != nil {
		s.logger.Warn().Err(err).Str("path", s.cfg.Metrics.Textfile).Msg(MsgMetricsWriteErr)
	}
}

func (s *session) destination() string {
	return mirror.Destination(s.cfg.RootDir, s.cfg.SubpackageDir)
}

// ownedFiles returns the files a run rewrites inside outputDir
func (s *session) ownedFiles(outputDir string) []string {
	files := make([]string, 0, len(s.cfg.Rewrite))
	for _, rw := range s.cfg.Rewrite {
		files = append(files, paths.FullPath(outputDir, rw.File))
	}
	return files
}
