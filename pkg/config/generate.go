package config

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	perrors "github.com/arthur-debert/subpack/pkg/errors"
)

// Formats supported by Generate
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

type starterConfig struct {
	RootDir       string           `toml:"root_dir" yaml:"root_dir" comment:"Native project root"`
	SubpackageDir string           `toml:"subpackage_dir" yaml:"subpackage_dir" comment:"Subpackage directory inside root_dir; defaults to $UNI_SUBPACKAGE"`
	Platform      string           `toml:"platform" yaml:"platform" comment:"Only builds for this platform are mirrored"`
	DryRun        bool             `toml:"dry_run" yaml:"dry_run"`
	Rsync         starterRsync     `toml:"rsync" yaml:"rsync"`
	Metrics       starterMetrics   `toml:"metrics" yaml:"metrics"`
	Watch         starterWatch     `toml:"watch" yaml:"watch"`
	Rewrite       []starterRewrite `toml:"rewrite" yaml:"rewrite"`
}

type starterRsync struct {
	Binary string `toml:"binary" yaml:"binary"`
}

type starterMetrics struct {
	Textfile string `toml:"textfile" yaml:"textfile" comment:"Prometheus textfile written after each run; empty disables"`
}

type starterWatch struct {
	Debounce string `toml:"debounce" yaml:"debounce"`
}

type starterRewrite struct {
	File    string           `toml:"file" yaml:"file"`
	Replace []starterReplace `toml:"replace,omitempty" yaml:"replace,omitempty"`
	Regexp  []starterRegexp  `toml:"regexp,omitempty" yaml:"regexp,omitempty"`
}

type starterReplace struct {
	Old string `toml:"old" yaml:"old"`
	New string `toml:"new" yaml:"new"`
}

type starterRegexp struct {
	Pattern string `toml:"pattern" yaml:"pattern"`
	Replace string `toml:"replace" yaml:"replace"`
}

func starter() starterConfig {
	return starterConfig{
		RootDir:       "../native-app",
		SubpackageDir: "subpackages/mini",
		Platform:      "mp-weixin",
		Rsync:         starterRsync{Binary: "rsync"},
		Watch:         starterWatch{Debounce: "300ms"},
		Rewrite: []starterRewrite{
			{
				File: "app.js",
				Replace: []starterReplace{
					{Old: "require('./common/vendor.js')", New: "require('${basePath}/common/vendor.js')"},
				},
			},
		},
	}
}

// Generate renders a starter project config in the given format
func Generate(format string) ([]byte, error) {
	cfg := starter()

	switch format {
	case FormatTOML, "":
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(cfg); err != nil {
			return nil, perrors.Wrap(err, perrors.ErrUnknown, "failed to encode starter config")
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, perrors.Wrap(err, perrors.ErrUnknown, "failed to encode starter config")
		}
		if err := enc.Close(); err != nil {
			return nil, perrors.Wrap(err, perrors.ErrUnknown, "failed to encode starter config")
		}
		return buf.Bytes(), nil
	default:
		return nil, perrors.Newf(perrors.ErrInvalidInput, "unsupported format %q", format).
			WithDetail("format", format)
	}
}

// FileName returns the project file name Generate output should be saved as
func FileName(format string) string {
	if format == FormatYAML {
		return "subpack.yaml"
	}
	return "subpack.toml"
}
