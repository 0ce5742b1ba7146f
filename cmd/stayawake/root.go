package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stayawake",
	Short: "Keep the computer awake by nudging an idle cursor",
	Long: `StayAwake samples the cursor position at a fixed interval. When the cursor
has not moved for a whole interval it is moved by a small random offset that
stays inside the configured working area.

While running, StayAwake also asks the operating system not to suspend.

Running stayawake with no subcommand is the same as "stayawake run".`,
	SilenceUsage: true,
}

func init() {
	opts := &runOptions{}
	opts.bind(rootCmd.Flags())
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, opts)
	}
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
