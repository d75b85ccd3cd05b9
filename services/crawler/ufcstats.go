package crawler

import (
	"context"
	"log/slog"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/ufcstats"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
	"go.opentelemetry.io/otel/attribute"
)

// RunUFCStats crawls the fighter index letter by letter. Every unseen
// fighter is scraped and emitted, then each of their fights, and after
// each fight its event if that is still unseen. The limit counts
// emitted fighters.
func (c *Crawler) RunUFCStats(ctx context.Context, scraper *ufcstats.Scraper, letters string) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "RunUFCStats")
	defer span.End()
	span.SetAttributes(attribute.String("letters", letters))

	c.summary = newSummary(c.source, Fighters, Fights, Events)
	runID := c.startRun(ctx)
	defer c.finishRun(context.WithoutCancel(ctx), runID)

	if letters == "" {
		letters = ufcstats.Letters
	}

crawl:
	for _, r := range letters {
		if ctx.Err() != nil {
			break
		}
		letter := string(r)
		links, err := scraper.FighterIndex(ctx, letter)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("fighter index failed", "letter", letter, "err", err)
			c.summary.classify(err)
			continue
		}
		slog.Info("crawling fighter index", "letter", letter, "fighters", len(links))

		for _, link := range links {
			if ctx.Err() != nil || c.limitReached(Fighters) {
				break crawl
			}
			if err := c.ufcstatsFighter(ctx, scraper, link); err != nil {
				return c.summary, err
			}
		}
	}
	return c.summary, nil
}

// ufcstatsFighter scrapes one fighter and descends into their fights.
// Scrape failures are recorded and swallowed; only a sink write error
// comes back and aborts the run.
func (c *Crawler) ufcstatsFighter(ctx context.Context, scraper *ufcstats.Scraper, link string) error {
	id, err := urlid.UFCStats(link)
	if err != nil {
		slog.Warn("skipping malformed fighter link", "url", link, "err", err)
		c.summary.classify(err)
		return nil
	}
	if c.seen[Fighters][id] {
		c.summary.Skipped++
		return nil
	}

	ctx, span := tracer.Start(ctx, "ufcstatsFighter")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	fighter, err := scraper.Fighter(ctx, link)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.fail(ctx, Fighters, link, err)
		return nil
	}
	if err := c.emit(ctx, Fighters, id, link, fighter); err != nil {
		return err
	}
	slog.Info("scraped fighter", "id", id, "name", stringOrEmpty(fighter.Name), "fights", len(fighter.Fights))

	// the history table already carries the fight links, no second
	// fetch of the fighter page needed
	for _, ref := range fighter.Fights {
		if ctx.Err() != nil {
			return nil
		}
		if err := c.ufcstatsFight(ctx, scraper, ref); err != nil {
			return err
		}
	}
	return nil
}

func (c *Crawler) ufcstatsFight(ctx context.Context, scraper *ufcstats.Scraper, ref ufcstats.FightSummary) error {
	if c.seen[Fights][ref.FightID] {
		c.summary.Skipped++
		return nil
	}

	fight, err := scraper.Fight(ctx, ref.FightURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.fail(ctx, Fights, ref.FightURL, err)
		return nil
	}
	if err := c.emit(ctx, Fights, ref.FightID, ref.FightURL, fight); err != nil {
		return err
	}

	if fight.EventURL == nil || fight.EventID == nil || c.seen[Events][*fight.EventID] {
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}
	return c.ufcstatsEvent(ctx, scraper, *fight.EventURL)
}

func (c *Crawler) ufcstatsEvent(ctx context.Context, scraper *ufcstats.Scraper, link string) error {
	id, err := urlid.UFCStats(link)
	if err != nil {
		slog.Warn("skipping malformed event link", "url", link, "err", err)
		c.summary.classify(err)
		return nil
	}
	if c.seen[Events][id] {
		c.summary.Skipped++
		return nil
	}

	event, err := scraper.Event(ctx, link)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.fail(ctx, Events, link, err)
		return nil
	}
	return c.emit(ctx, Events, id, link, event)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
