// Package espn extracts fighters, events and schedules from espn.com's mma
// section. The Extract* functions are pure functions over parsed documents;
// Scraper binds them to a paced fetch client and an optional headless
// renderer for the script-built fightcenter cards.
package espn

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ufcscraper.lib.scrapers.espn")

// DefaultBaseURL is the canonical host.
const DefaultBaseURL = "https://www.espn.com"

// BioURL derives the bio page from a fighter's landing page url.
func BioURL(profileURL string) string {
	return strings.Replace(profileURL, "/fighter/", "/fighter/bio/", 1)
}

// StatsURL derives the career stats page from a fighter's landing page url.
func StatsURL(profileURL string) string {
	return strings.Replace(profileURL, "/fighter/", "/fighter/stats/", 1)
}

// HistoryURL derives the fight history page from a fighter's landing page
// url.
func HistoryURL(profileURL string) string {
	return strings.Replace(profileURL, "/fighter/", "/fighter/history/", 1)
}

// ScheduleURL returns the path of the schedule page for a year.
func ScheduleURL(year int) string {
	return fmt.Sprintf("/mma/schedule/_/year/%d", year)
}

func absoluteURL(href string) string {
	if href == "" || strings.Contains(href, "://") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return "https:" + href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return DefaultBaseURL + href
}

// ComposeFighter assembles the full record for one fighter from its four
// pages. Structured extraction wins; where the bio card left a field empty
// the top heuristic candidate fills it, and the full candidate lists ride
// along for review.
func ComposeFighter(profileDoc, bioDoc, statsDoc, historyDoc *goquery.Document, link string) (Fighter, error) {
	profile, err := ExtractProfile(profileDoc, link)
	if err != nil {
		return Fighter{}, err
	}
	bio, err := ExtractBio(bioDoc, BioURL(link))
	if err != nil {
		return Fighter{}, err
	}
	fights, err := ExtractHistory(historyDoc, HistoryURL(link))
	if err != nil {
		return Fighter{}, err
	}
	AttachStats(fights, ParseStatsTables(statsDoc))

	fighter := Fighter{
		Profile:    profile,
		Bio:        bio,
		BioURL:     BioURL(link),
		StatsURL:   StatsURL(link),
		HistoryURL: HistoryURL(link),
		Fights:     fights,
	}

	// the bio page carries every structured region, so candidates come
	// from there
	candidates := make(map[Kind][]Candidate)
	for _, kind := range Kinds {
		if found := Resolve(bioDoc, kind); len(found) > 0 {
			candidates[kind] = found
		}
	}
	if len(candidates) > 0 {
		fighter.Candidates = candidates
	}

	fill := func(field **string, kind Kind) {
		if *field != nil {
			return
		}
		if list := candidates[kind]; len(list) > 0 {
			value := list[0].Value
			*field = &value
		}
	}
	fill(&fighter.Bio.Record, KindRecord)
	fill(&fighter.Bio.Height, KindHeight)
	fill(&fighter.Bio.Weight, KindWeight)
	fill(&fighter.Bio.Reach, KindReach)
	fill(&fighter.Bio.Birthdate, KindBirthdate)
	fill(&fighter.Bio.WeightClass, KindWeightClass)
	fill(&fighter.Bio.Country, KindCountry)

	return fighter, nil
}

// expandCaretSelector clicks open the collapsed bout strips so the
// competitor names make it into the captured markup. The :has clause keeps
// the click off strips that are already open.
const expandCaretSelector = `[data-testid="gameStripBarCaret"]:has(svg[data-icon="playerControls-downCarot"])`

// Scraper fetches espn.com pages through a paced client and runs the
// extractors on them.
type Scraper struct {
	http     *fetch.Client
	renderer *fetch.Renderer
	base     string
}

// NewScraper builds a scraper. The renderer is optional; without it the
// fightcenter cards are parsed from the static markup, which can hide
// collapsed bout strips.
func NewScraper(baseURL string, renderer *fetch.Renderer, opts fetch.Options) (*Scraper, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if len(opts.AllowedDomains) == 0 {
		opts.AllowedDomains = []string{"espn.com", "www.espn.com"}
	}
	client, err := fetch.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &Scraper{http: client, renderer: renderer, base: strings.TrimSuffix(baseURL, "/")}, nil
}

// Schedule returns every event row on the schedule page for a year,
// whichever league it belongs to.
func (s *Scraper) Schedule(ctx context.Context, year int) ([]ScheduleEvent, error) {
	ctx, span := tracer.Start(ctx, "Schedule")
	defer span.End()
	span.SetAttributes(attribute.Int("year", year))

	doc, err := s.http.GetDocument(ctx, s.base+ScheduleURL(year))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch schedule page")
		return nil, err
	}
	return ExtractSchedule(doc, year), nil
}

func (s *Scraper) Event(ctx context.Context, link string) (Event, error) {
	ctx, span := tracer.Start(ctx, "Event")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	doc, err := s.eventDocument(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch event page")
		return Event{}, err
	}
	event, err := ExtractEvent(doc, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract event")
		return Event{}, err
	}
	return event, nil
}

func (s *Scraper) eventDocument(ctx context.Context, link string) (*goquery.Document, error) {
	if s.renderer != nil {
		body, err := s.renderer.Render(ctx, link, fetch.RenderOptions{
			ExpandSelector: expandCaretSelector,
			Settle:         time.Second,
		})
		if err == nil {
			doc, perr := htmlutil.Parse(body)
			if perr == nil {
				return doc, nil
			}
			err = perr
		}
		slog.Warn("rendered event page unusable, falling back to static fetch",
			"url", link, "err", err)
	}
	return s.http.GetDocument(ctx, link)
}

// Fighter fetches the landing, bio, stats and history pages for one
// fighter and composes them.
func (s *Scraper) Fighter(ctx context.Context, link string) (Fighter, error) {
	ctx, span := tracer.Start(ctx, "Fighter")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	profileDoc, err := s.http.GetDocument(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch fighter page")
		return Fighter{}, err
	}
	bioDoc, err := s.http.GetDocument(ctx, BioURL(link))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch bio page")
		return Fighter{}, err
	}
	statsDoc, err := s.http.GetDocument(ctx, StatsURL(link))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch stats page")
		return Fighter{}, err
	}
	historyDoc, err := s.http.GetDocument(ctx, HistoryURL(link))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch history page")
		return Fighter{}, err
	}

	fighter, err := ComposeFighter(profileDoc, bioDoc, statsDoc, historyDoc, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "compose fighter")
		return Fighter{}, err
	}
	return fighter, nil
}
