package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/default.yaml"

// -----------------------------------------------------------------------------

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------

// newRootCmd serves when called without a subcommand.
func newRootCmd() *cobra.Command {
	var cfgPath string
	var opts serveOptions

	root := &cobra.Command{
		Use:          "benchmark-observer",
		Short:        "Classify db-benchmark telemetry into per-run log files",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfgPath, opts)
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, "config file path (missing file means defaults)")
	opts.bind(root)

	root.AddCommand(newServeCmd(&cfgPath))
	root.AddCommand(newInitCmd(&cfgPath))
	root.AddCommand(newReportCmd(&cfgPath))

	return root
}
