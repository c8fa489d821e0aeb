package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/subpack/internal/version"
	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/rsync"
)

// globalFlags are shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	workDir    string
}

// pipelineFlags override configuration for run and watch
type pipelineFlags struct {
	platform      string
	rootDir       string
	subpackageDir string
	rsyncBinary   string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(nil)
}

// newRootCmd builds the command tree. A nil executor runs the real rsync.
func newRootCmd(exec rsync.Executor) *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "subpack",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, "Run transforms and rsync without writing anything")
	rootCmd.PersistentFlags().StringVarP(&g.configFile, "config", "c", "", "Config file (default ./subpack.toml)")
	rootCmd.PersistentFlags().StringVarP(&g.workDir, "chdir", "C", "", "Run as if started in this directory")

	rootCmd.AddCommand(newRunCmd(g, exec))
	rootCmd.AddCommand(newWatchCmd(g, exec))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func addPipelineFlags(cmd *cobra.Command, f *pipelineFlags) {
	cmd.Flags().StringVarP(&f.platform, "platform", "p", "", "Platform of the current build (default $UNI_PLATFORM)")
	cmd.Flags().StringVar(&f.rootDir, "root-dir", "", "Native project root")
	cmd.Flags().StringVar(&f.subpackageDir, "subpackage-dir", "", "Subpackage directory inside the native project")
	cmd.Flags().StringVar(&f.rsyncBinary, "rsync", "", "rsync executable")
}

// buildPlatform returns the platform the current build targets
func (f *pipelineFlags) buildPlatform() string {
	if f.platform != "" {
		return f.platform
	}
	return os.Getenv(config.EnvUniPlatform)
}

// dir returns the directory config and relative paths are resolved from
func (g *globalFlags) dir() (string, error) {
	if g.workDir != "" {
		return filepath.Abs(g.workDir)
	}
	return os.Getwd()
}

func (g *globalFlags) resolve(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	dir, err := g.dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, path), nil
}

func loadConfig(cmd *cobra.Command, g *globalFlags, f *pipelineFlags) (*config.Config, error) {
	dir, err := g.dir()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve working directory")
	}

	overrides := map[string]interface{}{}
	if cmd.Flags().Changed("dry-run") {
		overrides["dry_run"] = g.dryRun
	}
	if f != nil {
		if f.rootDir != "" {
			overrides["root_dir"] = f.rootDir
		}
		if f.subpackageDir != "" {
			overrides["subpackage_dir"] = f.subpackageDir
		}
		if f.rsyncBinary != "" {
			overrides["rsync.binary"] = f.rsyncBinary
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		WorkDir:    dir,
		ConfigFile: g.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Str("source", cfg.Source).Stringer("config", cfg).Msg("Configuration loaded")
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "subpack version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}
