package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nathanmaher41/UFCWebScraper/lib/configutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"github.com/nathanmaher41/UFCWebScraper/lib/serviceutil"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler/db"
)

type Config struct {
	// directory the jsonl streams are appended to
	Out string `json:"out"`
	// path of the sqlite run/failure ledger, defaults to crawl.db
	// inside the output directory
	Ledger string `json:"ledger"`

	MinDelaySeconds int    `json:"min_delay_seconds"`
	MaxDelaySeconds int    `json:"max_delay_seconds"`
	TimeoutSeconds  int    `json:"timeout_seconds"`
	UserAgent       string `json:"user_agent"`

	// league slugs admitted by the espn crawl, empty admits all
	Leagues []string `json:"leagues"`
	// render fightcenter pages in a headless browser so collapsed
	// bout strips make it into the card
	Headless bool `json:"headless"`

	Smtp crawler.SMTPConfig `json:"smtp"`
}

// loadConfig reads config.json5 plus its .local overlay and fills in
// the defaults. A missing file just means an all-default run. outFlag
// overrides the configured output directory when set.
func loadConfig(outFlag string) Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("no config.json5 found, using defaults")
	} else if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	if outFlag != "" {
		cfg.Out = outFlag
	}
	if cfg.Out == "" {
		cfg.Out = "data"
	}
	if cfg.Ledger == "" {
		cfg.Ledger = filepath.Join(cfg.Out, "crawl.db")
	}
	if cfg.MinDelaySeconds <= 0 {
		cfg.MinDelaySeconds = 2
	}
	if cfg.MaxDelaySeconds < cfg.MinDelaySeconds {
		cfg.MaxDelaySeconds = cfg.MinDelaySeconds + 4
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 30
	}
	return cfg
}

func (c Config) fetchOptions() fetch.Options {
	return fetch.Options{
		MinDelay:  time.Duration(c.MinDelaySeconds) * time.Second,
		MaxDelay:  time.Duration(c.MaxDelaySeconds) * time.Second,
		Timeout:   time.Duration(c.TimeoutSeconds) * time.Second,
		UserAgent: c.UserAgent,
	}
}

func openCrawler(ctx context.Context, cfg Config, source string, limit int) (*crawler.Crawler, *sql.DB) {
	database, err := db.Open(cfg.Ledger)
	if err != nil {
		serviceutil.Fatal("failed to open ledger", err)
	}
	c, err := crawler.New(ctx, database, crawler.Options{
		Source: source,
		OutDir: cfg.Out,
		Limit:  limit,
	})
	if err != nil {
		serviceutil.Fatal("failed to prepare crawl", err)
	}
	return c, database
}

// report prints the run table and mails it when smtp is configured.
func report(cfg Config, summary *crawler.Summary) {
	fmt.Println(summary.Render())
	if err := crawler.Notify(cfg.Smtp, summary); err != nil {
		slog.Warn("could not mail the summary", "err", err)
	}
}
