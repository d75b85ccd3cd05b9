package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/espn"
	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/ufcstats"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Scrapes a single ufcstats or espn url and prints the record as JSON.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig("")

		record, err := scrapeOne(cmd.Context(), cfg, args[0])
		if err != nil {
			serviceutil.Fatal("probe failed", err)
		}
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			serviceutil.Fatal("could not render record", err)
		}
		fmt.Println(string(data))
	},
}

// scrapeOne dispatches on the url shape: the host picks the source and
// the path picks the entity kind.
func scrapeOne(ctx context.Context, cfg Config, link string) (any, error) {
	switch {
	case strings.Contains(link, "ufcstats.com"):
		scraper, err := ufcstats.NewScraper("", cfg.fetchOptions())
		if err != nil {
			return nil, err
		}
		switch {
		case strings.Contains(link, "/fighter-details/"):
			return scraper.Fighter(ctx, link)
		case strings.Contains(link, "/event-details/"):
			return scraper.Event(ctx, link)
		case strings.Contains(link, "/fight-details/"):
			return scraper.Fight(ctx, link)
		}
		return nil, fmt.Errorf("unrecognized ufcstats url shape: %s", link)

	case strings.Contains(link, "espn.com"):
		scraper, err := espn.NewScraper("", nil, cfg.fetchOptions())
		if err != nil {
			return nil, err
		}
		switch {
		case strings.Contains(link, "/mma/fighter/"):
			return scraper.Fighter(ctx, link)
		case strings.Contains(link, "/mma/fightcenter/"):
			return scraper.Event(ctx, link)
		}
		return nil, fmt.Errorf("unrecognized espn url shape: %s", link)
	}
	return nil, fmt.Errorf("url belongs to neither ufcstats.com nor espn.com: %s", link)
}
