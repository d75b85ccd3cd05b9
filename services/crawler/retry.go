package crawler

import (
	"context"
	"log/slog"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/espn"
	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/ufcstats"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
	"github.com/nathanmaher41/UFCWebScraper/services/crawler/db"
)

// RetryUFCStats re-scrapes every ledger failure with attempts left.
// Each retried item goes through the same path as a fresh encounter,
// descents included, so a recovered fighter also backfills their
// missing fights and events.
func (c *Crawler) RetryUFCStats(ctx context.Context, scraper *ufcstats.Scraper) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "RetryUFCStats")
	defer span.End()

	c.summary = newSummary(c.source, Fighters, Fights, Events)
	runID := c.startRun(ctx)
	defer c.finishRun(context.WithoutCancel(ctx), runID)

	rows, err := c.retryable(ctx)
	if err != nil {
		return c.summary, err
	}
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		if c.cleared(ctx, row) {
			continue
		}
		switch Stream(row.Stream) {
		case Fighters:
			err = c.ufcstatsFighter(ctx, scraper, row.URL)
		case Fights:
			id, iderr := urlid.UFCStats(row.URL)
			if iderr != nil {
				c.fail(ctx, Fights, row.URL, iderr)
				continue
			}
			err = c.ufcstatsFight(ctx, scraper, ufcstats.FightSummary{FightURL: row.URL, FightID: id})
		case Events:
			err = c.ufcstatsEvent(ctx, scraper, row.URL)
		default:
			slog.Warn("unknown stream in failure ledger", "stream", row.Stream, "url", row.URL)
			continue
		}
		if err != nil {
			return c.summary, err
		}
	}
	return c.summary, nil
}

// RetryESPN re-scrapes every ledger failure with attempts left. A
// retried event has no schedule row anymore, so it is emitted without
// the schedule-only fields.
func (c *Crawler) RetryESPN(ctx context.Context, scraper *espn.Scraper) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "RetryESPN")
	defer span.End()

	c.summary = newSummary(c.source, Events, Fighters)
	runID := c.startRun(ctx)
	defer c.finishRun(context.WithoutCancel(ctx), runID)

	rows, err := c.retryable(ctx)
	if err != nil {
		return c.summary, err
	}
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		if c.cleared(ctx, row) {
			continue
		}
		switch Stream(row.Stream) {
		case Events:
			id, iderr := urlid.ESPN(row.URL)
			if iderr != nil {
				c.fail(ctx, Events, row.URL, iderr)
				continue
			}
			err = c.espnEvent(ctx, scraper, espn.ScheduleEvent{URL: row.URL, ID: id})
		case Fighters:
			err = c.espnFighter(ctx, scraper, row.URL)
		default:
			slog.Warn("unknown stream in failure ledger", "stream", row.Stream, "url", row.URL)
			continue
		}
		if err != nil {
			return c.summary, err
		}
	}
	return c.summary, nil
}

func (c *Crawler) retryable(ctx context.Context) ([]db.Failure, error) {
	rows, err := c.qry.ListRetryable(ctx, db.ListRetryableParams{
		Source:      c.source,
		MaxAttempts: maxAttempts,
	})
	if err != nil {
		return nil, err
	}
	slog.Info("retrying failed items", "source", c.source, "items", len(rows))
	return rows, nil
}

// cleared drops a failure row whose item made it into the output
// through some later path; there is nothing left to retry.
func (c *Crawler) cleared(ctx context.Context, row db.Failure) bool {
	id, err := idForSource(c.source, row.URL)
	if err != nil || !c.seen[Stream(row.Stream)][id] {
		return false
	}
	c.summary.Skipped++
	delete(c.attempts, row.URL)
	clearErr := c.qry.ClearFailure(ctx, db.ClearFailureParams{
		Source: c.source,
		Stream: row.Stream,
		URL:    row.URL,
	})
	if clearErr != nil {
		slog.Warn("ledger failure clear failed", "url", row.URL, "err", clearErr)
	}
	return true
}

func idForSource(source, url string) (string, error) {
	if source == SourceESPN {
		return urlid.ESPN(url)
	}
	return urlid.UFCStats(url)
}
