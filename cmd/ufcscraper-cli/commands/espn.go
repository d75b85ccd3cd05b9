package commands

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/espn"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler"
	"github.com/spf13/cobra"
)

var (
	espnStartYear *int
	espnEndYear   *int
	espnLeagues   *[]string
	espnOut       *string
	espnLimit     *int
	espnHeadless  *bool
)

func init() {
	espnStartYear = espnCmd.Flags().Int("start-year", time.Now().Year(), "Newest schedule year to crawl.")
	espnEndYear = espnCmd.Flags().Int("end-year", 1993, "Oldest schedule year to crawl.")
	espnLeagues = espnCmd.Flags().StringSlice("leagues", nil, "League slugs to admit, e.g. ufc,pfl. Empty admits every league.")
	espnOut = espnCmd.Flags().String("out", "", "Directory to write the jsonl streams to.")
	espnLimit = espnCmd.Flags().Int("limit", 0, "Stop after this many events were emitted. 0 means no limit.")
	espnHeadless = espnCmd.Flags().Bool("headless", false, "Render fightcenter pages in a headless browser.")
	rootCmd.AddCommand(espnCmd)
}

var espnCmd = &cobra.Command{
	Use:   "espn [--start-year <y>] [--end-year <y>] [--leagues ufc,pfl] [--out <dir>] [--limit <n>] [--headless]",
	Short: "Crawls espn.com mma events and the fighters on their cards, newest year first.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		cfg := loadConfig(*espnOut)
		if len(*espnLeagues) > 0 {
			cfg.Leagues = *espnLeagues
		}
		if cmd.Flags().Changed("headless") {
			cfg.Headless = *espnHeadless
		}
		if *espnEndYear > *espnStartYear {
			serviceutil.Fatal("invalid year range", fmt.Errorf(
				"end-year %d lies after start-year %d", *espnEndYear, *espnStartYear))
		}

		var renderer *fetch.Renderer
		if cfg.Headless {
			var err error
			renderer, err = fetch.NewRenderer(ctx, cfg.UserAgent)
			if err != nil {
				serviceutil.Fatal("failed to start headless browser", err)
			}
			defer renderer.Close()
		}

		scraper, err := espn.NewScraper("", renderer, cfg.fetchOptions())
		if err != nil {
			serviceutil.Fatal("failed to build scraper", err)
		}

		c, database := openCrawler(ctx, cfg, crawler.SourceESPN, *espnLimit)
		defer database.Close()
		defer c.Close()

		summary, err := c.RunESPN(ctx, scraper, crawler.ESPNRun{
			StartYear: *espnStartYear,
			EndYear:   *espnEndYear,
			Leagues:   cfg.Leagues,
		})
		if err != nil {
			slog.Error("crawl aborted", "err", err)
		}
		report(cfg, summary)
	},
}
