// Package ufcstats extracts fighters, events and fights from ufcstats.com.
// The Extract* functions are pure functions over parsed documents; Scraper
// binds them to a paced fetch client.
package ufcstats

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("ufcscraper.lib.scrapers.ufcstats")

// DefaultBaseURL is the canonical host. The bare apex redirects here.
const DefaultBaseURL = "http://www.ufcstats.com"

// Letters spans the last-name index pages.
const Letters = "abcdefghijklmnopqrstuvwxyz"

// FighterIndexURL returns the path of the index page listing every fighter
// whose last name starts with letter. The page=all variant skips pagination.
func FighterIndexURL(letter string) string {
	return "/statistics/fighters?char=" + url.QueryEscape(letter) + "&page=all"
}

// ExtractFighterURLs collects the distinct fighter-details links in the
// document, in document order.
func ExtractFighterURLs(doc *goquery.Document) []string {
	return collectLinks(doc, `a[href*="/fighter-details/"]`)
}

// ExtractFightURLs collects the distinct fight-details links in the
// document, in document order.
func ExtractFightURLs(doc *goquery.Document) []string {
	return collectLinks(doc, `a[href*="/fight-details/"]`)
}

func collectLinks(doc *goquery.Document, selector string) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find(selector).Each(func(_ int, anchor *goquery.Selection) {
		href := strings.TrimSpace(anchor.AttrOr("href", ""))
		if href == "" {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}

// Scraper fetches ufcstats.com pages through a paced client and runs the
// extractors on them.
type Scraper struct {
	http *fetch.Client
	base string
}

func NewScraper(baseURL string, opts fetch.Options) (*Scraper, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if len(opts.AllowedDomains) == 0 {
		opts.AllowedDomains = []string{"ufcstats.com", "www.ufcstats.com"}
	}
	client, err := fetch.NewClient(opts)
	if err != nil {
		return nil, err
	}
	return &Scraper{http: client, base: strings.TrimSuffix(baseURL, "/")}, nil
}

// FighterIndex returns the fighter-details urls listed for a last-name
// letter.
func (s *Scraper) FighterIndex(ctx context.Context, letter string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "FighterIndex")
	defer span.End()
	span.SetAttributes(attribute.String("letter", letter))

	doc, err := s.http.GetDocument(ctx, s.base+FighterIndexURL(letter))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch fighter index")
		return nil, err
	}
	return ExtractFighterURLs(doc), nil
}

func (s *Scraper) Fighter(ctx context.Context, link string) (Fighter, error) {
	ctx, span := tracer.Start(ctx, "Fighter")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	doc, err := s.http.GetDocument(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch fighter page")
		return Fighter{}, err
	}
	fighter, err := ExtractFighter(doc, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract fighter")
		return Fighter{}, err
	}
	return fighter, nil
}

func (s *Scraper) Event(ctx context.Context, link string) (Event, error) {
	ctx, span := tracer.Start(ctx, "Event")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	doc, err := s.http.GetDocument(ctx, link)
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

func (s *Scraper) Fight(ctx context.Context, link string) (Fight, error) {
	ctx, span := tracer.Start(ctx, "Fight")
	defer span.End()
	span.SetAttributes(attribute.String("url", link))

	doc, err := s.http.GetDocument(ctx, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch fight page")
		return Fight{}, err
	}
	fight, err := ExtractFight(doc, link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extract fight")
		return Fight{}, err
	}
	return fight, nil
}
