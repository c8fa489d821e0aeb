package config

import (
	"time"
)

// Config is the resolved subpack configuration
type Config struct {
	RootDir       string `koanf:"root_dir"`
	SubpackageDir string `koanf:"subpackage_dir"`

	// Platform is the build platform the pipeline runs for. Builds for any
	// other platform are skipped.
	Platform string `koanf:"platform"`
	DryRun   bool   `koanf:"dry_run"`

	Rsync   RsyncConfig     `koanf:"rsync"`
	Metrics MetricsConfig   `koanf:"metrics"`
	Watch   WatchConfig     `koanf:"watch"`
	Rewrite []RewriteConfig `koanf:"rewrite"`

	// Source is the project file that was loaded, if any
	Source string `koanf:"-"`
}

// RsyncConfig configures the mirroring utility
type RsyncConfig struct {
	Binary string `koanf:"binary"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	// Textfile receives Prometheus text-format metrics after each run
	Textfile string `koanf:"textfile"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// RewriteConfig declares the transforms for one output file. Replacements
// run in order: all literal replacements, then all regexp replacements.
type RewriteConfig struct {
	File    string          `koanf:"file"`
	Replace []ReplaceConfig `koanf:"replace"`
	Regexp  []RegexpConfig  `koanf:"regexp"`
}

// ReplaceConfig replaces every occurrence of Old with New
type ReplaceConfig struct {
	Old string `koanf:"old"`
	New string `koanf:"new"`
}

// RegexpConfig replaces every match of Pattern with Replace
type RegexpConfig struct {
	Pattern string `koanf:"pattern"`
	Replace string `koanf:"replace"`
}
