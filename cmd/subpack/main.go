package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/subpack/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(1)
	}
}
