package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/subpack/pkg/config"
	"github.com/arthur-debert/subpack/pkg/errors"
	"github.com/arthur-debert/subpack/pkg/filesystem"
)

func newGenConfigCmd(g *globalFlags) *cobra.Command {
	var (
		format string
		write  bool
	)

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Example: MsgGenConfigExample,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Generate(format)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !write {
				_, err := out.Write(data)
				return err
			}

			target, err := g.resolve(config.FileName(format))
			if err != nil {
				return err
			}
			fsys := filesystem.NewOS()
			if _, err := fsys.Stat(target); err == nil {
				_, _ = fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf(MsgConfigExists, target)))
				return nil
			}
			if err := fsys.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrUnknown, "failed to create %s", filepath.Dir(target)).
					WithDetail(errors.DetailPath, target)
			}
			if err := filesystem.WriteFileAtomic(fsys, target, data, 0644); err != nil {
				return errors.Wrapf(err, errors.ErrUnknown, "failed to write %s", target).
					WithDetail(errors.DetailPath, target)
			}

			_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(MsgConfigWritten, target)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, "Output format (toml or yaml)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the config file instead of printing it")

	return cmd
}
