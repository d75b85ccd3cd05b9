package commands

import (
	"fmt"
	"log/slog"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/espn"
	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/ufcstats"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler"
	"github.com/spf13/cobra"
)

var (
	retrySource *string
	retryOut    *string
)

func init() {
	retrySource = retryCmd.Flags().String("source", "", "Source whose failed items to retry, ufcstats or espn.")
	retryOut = retryCmd.Flags().String("out", "", "Directory the jsonl streams live in.")
	rootCmd.AddCommand(retryCmd)
}

var retryCmd = &cobra.Command{
	Use:   "retry --source ufcstats|espn [--out <dir>]",
	Short: "Re-scrapes ledger failures that have retry attempts left.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig(*retryOut)

		var summary *crawler.Summary
		switch *retrySource {
		case crawler.SourceUFCStats:
			scraper, err := ufcstats.NewScraper("", cfg.fetchOptions())
			if err != nil {
				serviceutil.Fatal("failed to build scraper", err)
			}
			c, database := openCrawler(ctx, cfg, crawler.SourceUFCStats, 0)
			defer database.Close()
			defer c.Close()

			summary, err = c.RetryUFCStats(ctx, scraper)
			if err != nil {
				slog.Error("retry aborted", "err", err)
			}
		case crawler.SourceESPN:
			scraper, err := espn.NewScraper("", nil, cfg.fetchOptions())
			if err != nil {
				serviceutil.Fatal("failed to build scraper", err)
			}
			c, database := openCrawler(ctx, cfg, crawler.SourceESPN, 0)
			defer database.Close()
			defer c.Close()

			summary, err = c.RetryESPN(ctx, scraper)
			if err != nil {
				slog.Error("retry aborted", "err", err)
			}
		default:
			serviceutil.Fatal("unknown source", fmt.Errorf(
				"--source must be %q or %q, got %q",
				crawler.SourceUFCStats, crawler.SourceESPN, *retrySource))
		}
		report(cfg, summary)
	},
}
