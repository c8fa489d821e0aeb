// Package metrics records pipeline run and stage metrics.
//
// Components take a Recorder. NoopRecorder is the default; the Prometheus
// recorder is used when a metrics textfile is configured, and its registry
// is written in the Prometheus text format after each run so a
// node_exporter textfile collector can pick it up.
package metrics

import "time"

// Stage names
const (
	StageRewrite = "rewrite"
	StageSync    = "sync"
)

// Run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeSkipped = "skipped"
)

// Recorder defines observability hooks for pipeline runs
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome string)
	SetRewriteRules(n int)
}

// NoopRecorder is a Recorder that does nothing
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(string)                       {}
func (NoopRecorder) SetRewriteRules(int)                        {}
