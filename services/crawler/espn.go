package crawler

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nathanmaher41/UFCWebScraper/lib/scrapers/espn"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
	"go.opentelemetry.io/otel/attribute"
)

// ESPNRun bounds one espn crawl: years run descending from StartYear
// to EndYear inclusive, and only events whose league slug is in
// Leagues are scraped. An empty Leagues list admits every league.
type ESPNRun struct {
	StartYear int
	EndYear   int
	Leagues   []string
}

// RunESPN crawls the schedule year by year, newest first. Every
// admitted, unseen event is scraped and emitted with the schedule row
// merged in and fight-of-the-night bouts flagged, then each fighter on
// the card is composed from their four pages and emitted. The limit
// counts emitted events.
func (c *Crawler) RunESPN(ctx context.Context, scraper *espn.Scraper, run ESPNRun) (*Summary, error) {
	ctx, span := tracer.Start(ctx, "RunESPN")
	defer span.End()
	span.SetAttributes(
		attribute.Int("start_year", run.StartYear),
		attribute.Int("end_year", run.EndYear),
	)

	c.summary = newSummary(c.source, Events, Fighters)
	runID := c.startRun(ctx)
	defer c.finishRun(context.WithoutCancel(ctx), runID)

crawl:
	for year := run.StartYear; year >= run.EndYear; year-- {
		if ctx.Err() != nil {
			break
		}
		schedule, err := scraper.Schedule(ctx, year)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			slog.Warn("schedule scrape failed", "year", year, "err", err)
			c.summary.classify(err)
			continue
		}
		slog.Info("crawling year", "year", year, "events", len(schedule))

		for _, item := range schedule {
			if ctx.Err() != nil || c.limitReached(Events) {
				break crawl
			}
			if !leagueAllowed(run.Leagues, item.League) {
				slog.Debug("skipping filtered league", "event", item.URL, "league", stringOrEmpty(item.League))
				continue
			}
			if c.seen[Events][item.ID] {
				c.summary.Skipped++
				continue
			}
			if c.attempts[item.URL] >= maxAttempts {
				slog.Warn("skipping event after repeated failures", "url", item.URL)
				c.summary.Skipped++
				continue
			}
			if err := c.espnEvent(ctx, scraper, item); err != nil {
				return c.summary, err
			}
		}
	}
	return c.summary, nil
}

func leagueAllowed(allowed []string, league *string) bool {
	if len(allowed) == 0 {
		return true
	}
	if league == nil {
		return false
	}
	slug := strings.ToLower(*league)
	for _, want := range allowed {
		if slug == strings.ToLower(want) {
			return true
		}
	}
	return false
}

func (c *Crawler) espnEvent(ctx context.Context, scraper *espn.Scraper, item espn.ScheduleEvent) error {
	ctx, span := tracer.Start(ctx, "espnEvent")
	defer span.End()
	span.SetAttributes(attribute.String("url", item.URL))

	event, err := scraper.Event(ctx, item.URL)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.fail(ctx, Events, item.URL, err)
		return nil
	}

	mergeScheduleInfo(&event, item)
	if event.FightOfTheNight != nil {
		espn.MarkFightOfTheNight(event.Fights, *event.FightOfTheNight)
	}
	if err := c.emit(ctx, Events, event.ID, item.URL, event); err != nil {
		return err
	}
	slog.Info("scraped event",
		"id", event.ID, "name", stringOrEmpty(event.Name), "fighters", len(event.FighterURLs))

	for _, link := range event.FighterURLs {
		if ctx.Err() != nil {
			return nil
		}
		if err := c.espnFighter(ctx, scraper, link); err != nil {
			return err
		}
	}
	return nil
}

func (c *Crawler) espnFighter(ctx context.Context, scraper *espn.Scraper, link string) error {
	id, err := urlid.ESPN(link)
	if err != nil {
		slog.Warn("skipping malformed fighter link", "url", link, "err", err)
		c.summary.classify(err)
		return nil
	}
	if c.seen[Fighters][id] {
		c.summary.Skipped++
		return nil
	}
	if c.attempts[link] >= maxAttempts {
		slog.Warn("skipping fighter after repeated failures", "url", link)
		c.summary.Skipped++
		return nil
	}

	fighter, err := scraper.Fighter(ctx, link)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		c.fail(ctx, Fighters, link, err)
		return nil
	}
	return c.emit(ctx, Fighters, fighter.ID, link, fighter)
}

// mergeScheduleInfo copies schedule row fields onto the event wherever
// the event page itself yielded nothing.
func mergeScheduleInfo(event *espn.Event, item espn.ScheduleEvent) {
	if event.Name == nil {
		event.Name = item.Name
	}
	if event.Date == nil {
		event.Date = item.Date
	}
	if event.Location == nil {
		event.Location = item.Location
	}
	if event.League == nil {
		event.League = item.League
	}
	if event.Year == nil && item.Year != 0 {
		year := item.Year
		event.Year = &year
	}
	if event.FightOfTheNight == nil {
		event.FightOfTheNight = item.FightOfTheNight
	}
}
