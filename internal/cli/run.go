package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/subpack/pkg/rsync"
)

func newRunCmd(g *globalFlags, exec rsync.Executor) *cobra.Command {
	f := &pipelineFlags{}

	cmd := &cobra.Command{
		Use:     "run <output-dir>",
		Short:   MsgRunShort,
		Example: MsgRunExample,
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
				s.flushMetrics()
				_, _ = fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf(MsgSkipped, platform, cfg.Platform)))
				return nil
			}

			outputDir, err := g.resolve(args[0])
			if err != nil {
				return err
			}
			if err := s.run(cmd.Context(), outputDir); err != nil {
				return err
			}

			if cfg.DryRun {
				_, _ = fmt.Fprintln(out, warnStyle.Render(MsgDryRunNotice))
			}
			_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(MsgSynced, outputDir, s.destination())))
			return nil
		},
	}
	addPipelineFlags(cmd, f)

	return cmd
}
