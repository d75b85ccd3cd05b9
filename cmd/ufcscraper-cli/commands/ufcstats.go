package commands

import (
	"log/slog"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/ufcstats"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler"
	"github.com/spf13/cobra"
)

var (
	ufcstatsLetters *string
	ufcstatsOut     *string
	ufcstatsLimit   *int
)

func init() {
	ufcstatsLetters = ufcstatsCmd.Flags().String("letters", "", "Last-name index letters to crawl, e.g. \"abc\". Empty crawls a through z.")
	ufcstatsOut = ufcstatsCmd.Flags().String("out", "", "Directory to write the jsonl streams to.")
	ufcstatsLimit = ufcstatsCmd.Flags().Int("limit", 0, "Stop after this many fighters were emitted. 0 means no limit.")
	rootCmd.AddCommand(ufcstatsCmd)
}

var ufcstatsCmd = &cobra.Command{
	Use:   "ufcstats [--letters abc] [--out <dir>] [--limit <n>]",
	Short: "Crawls ufcstats.com fighters, their fights and events.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig(*ufcstatsOut)

		scraper, err := ufcstats.NewScraper("", cfg.fetchOptions())
		if err != nil {
			serviceutil.Fatal("failed to build scraper", err)
		}

		c, database := openCrawler(ctx, cfg, crawler.SourceUFCStats, *ufcstatsLimit)
		defer database.Close()
		defer c.Close()

		summary, err := c.RunUFCStats(ctx, scraper, *ufcstatsLetters)
		if err != nil {
			slog.Error("crawl aborted", "err", err)
		}
		report(cfg, summary)
	},
}
