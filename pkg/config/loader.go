package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	perrors "github.com/arthur-debert/subpack/pkg/errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix prefixes environment variables read as configuration
const EnvPrefix = "SUBPACK_"

// Bundler environment variables
const (
	// EnvUniPlatform carries the platform of the current build
	EnvUniPlatform = "UNI_PLATFORM"

	// EnvUniSubpackage is used when subpackage_dir is not configured
	EnvUniSubpackage = "UNI_SUBPACKAGE"
)

// ProjectFiles are the project config file names, in lookup order
var ProjectFiles = []string{"subpack.toml", ".subpack.toml", "subpack.yaml", "subpack.yml"}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// WorkDir is searched for project files and .env. Defaults to the
	// current working directory.
	WorkDir string

	// ConfigFile, when set, is loaded instead of searching WorkDir
	ConfigFile string

	// SkipGlobal disables the user-wide config file
	SkipGlobal bool

	// Overrides are applied last, keyed like the config file
	// ("root_dir", "rsync.binary")
	Overrides map[string]interface{}
}

// Load resolves the layered configuration
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to get working directory")
		}
		workDir = wd
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to load defaults")
	}

	// 2. User-wide config
	if !opts.SkipGlobal {
		if global, ok := paths.GlobalConfigPath(); ok {
			if err := loadFile(k, global); err != nil {
				return nil, err
			}
			logger.Debug().Str("path", global).Msg("Loaded global config")
		}
	}

	// 3. Project config
	source := opts.ConfigFile
	if source == "" {
		source = findProjectFile(workDir)
	} else if !filepath.IsAbs(source) {
		source = filepath.Join(workDir, source)
	}
	if source != "" {
		if err := loadFile(k, source); err != nil {
			return nil, err
		}
		logger.Debug().Str("path", source).Msg("Loaded project config")
	}

	// 4. .env then environment
	envFile := filepath.Join(workDir, ".env")
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, perrors.Wrapf(err, perrors.ErrConfigLoad, "failed to load %s", envFile)
		}
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, perrors.Wrap(err, perrors.ErrConfigLoad, "failed to unmarshal configuration")
	}
	cfg.Source = source

	applyBundlerEnv(&cfg)
	cfg.RootDir = resolveDir(workDir, cfg.RootDir)
	cfg.Metrics.Textfile = resolveDir(workDir, cfg.Metrics.Textfile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	default:
		return perrors.Newf(perrors.ErrConfigLoad, "unsupported config format: %s", path)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return perrors.Wrapf(err, perrors.ErrConfigLoad, "failed to load config from %s", path)
	}
	return nil
}

func findProjectFile(dir string) string {
	for _, name := range ProjectFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envKey maps SUBPACK_ROOT_DIR to root_dir and SUBPACK_RSYNC__BINARY to rsync.binary
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

func applyBundlerEnv(cfg *Config) {
	if cfg.SubpackageDir == "" {
		cfg.SubpackageDir = os.Getenv(EnvUniSubpackage)
	}
}

func resolveDir(workDir, dir string) string {
	if dir == "" {
		return ""
	}
	dir = paths.ExpandHome(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(workDir, dir)
}

// String is used in error messages
func (c *Config) String() string {
	return fmt.Sprintf("root_dir=%q subpackage_dir=%q platform=%q", c.RootDir, c.SubpackageDir, c.Platform)
}
