package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/nathanmaher41/UFCWebScraper/lib/telemetry"
	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "ufcscraper-cli",
	Short: "ufcscraper-cli crawls mma statistics from ufcstats.com and espn.com into jsonl streams.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
