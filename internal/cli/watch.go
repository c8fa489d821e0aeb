package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/subpack/pkg/logging"
	"github.com/arthur-debert/subpack/pkg/rsync"
	"github.com/arthur-debert/subpack/pkg/watch"
)

func newWatchCmd(g *globalFlags, exec rsync.Executor) *cobra.Command {
	f := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:     "watch <output-dir>",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		Example: MsgWatchExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g, f)
			if err != nil {
				return err
			}
			s, err := newSession(cfg, exec)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			platform := f.buildPlatform()
			if !s.gate(platform) {
				_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(MsgSkipped, platform, cfg.Platform)))
				return nil
			}

			outputDir, err := g.resolve(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := watch.New(outputDir, func(ctx context.Context) error {
				if err := s.run(ctx, outputDir); err != nil {
					_, _ = fmt.Fprintln(cmd.ErrOrStderr(), RenderError(err))
					return err
				}
				_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(MsgSynced, outputDir, s.destination())))
				return nil
			},
				watch.WithDebounce(cfg.Watch.Debounce),
				watch.WithLogger(logging.GetLogger("watch")),
				watch.WithOwnedFiles(s.ownedFiles(outputDir)...),
			)
			if err := w.Start(ctx); err != nil {
				return err
			}

			<-ctx.Done()
			if err := w.Stop(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(out, mutedStyle.Render(MsgWatchStopped))
			return nil
		},
	}
	addPipelineFlags(cmd, f)

	return cmd
}
