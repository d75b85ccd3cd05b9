package espn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/stretchr/testify/require"
)

func TestURLDerivation(t *testing.T) {
	profile := "https://www.espn.com/mma/fighter/_/id/2335639/jon-jones"
	if got := BioURL(profile); got != "https://www.espn.com/mma/fighter/bio/_/id/2335639/jon-jones" {
		t.Fatalf("BioURL = %q", got)
	}
	if got := StatsURL(profile); got != "https://www.espn.com/mma/fighter/stats/_/id/2335639/jon-jones" {
		t.Fatalf("StatsURL = %q", got)
	}
	if got := HistoryURL(profile); got != "https://www.espn.com/mma/fighter/history/_/id/2335639/jon-jones" {
		t.Fatalf("HistoryURL = %q", got)
	}
	if got := ScheduleURL(2024); got != "/mma/schedule/_/year/2024" {
		t.Fatalf("ScheduleURL(2024) = %q", got)
	}
}

func scraperOptions() fetch.Options {
	return fetch.Options{
		MinDelay: time.Millisecond,
		MaxDelay: 2 * time.Millisecond,
		Timeout:  5 * time.Second,
	}
}

func TestComposeFighterFillsFromCandidates(t *testing.T) {
	profileDoc, err := htmlutil.Parse([]byte(`<html><head><title>Sam Okafor (2-0-0) Stats | ESPN</title></head><body></body></html>`))
	require.NoError(t, err)
	bioDoc, err := htmlutil.Parse([]byte(sparseBioPage))
	require.NoError(t, err)
	emptyDoc, err := htmlutil.Parse([]byte(`<html><body></body></html>`))
	require.NoError(t, err)

	link := "https://www.espn.com/mma/fighter/_/id/5130562/sam-okafor"
	got, err := ComposeFighter(profileDoc, bioDoc, emptyDoc, emptyDoc, link)
	require.NoError(t, err)

	// the bio card resolved nothing structured beyond the combined HT/WT,
	// so the record comes from the page title and the weight from the
	// HT/WT text; the "N/A" birthdate never becomes a value
	want := Fighter{
		Profile: Profile{
			ID:       "5130562",
			URL:      link,
			NameSlug: ptr("sam-okafor"),
			Name:     ptr("Sam Okafor"),
		},
		Bio: Bio{
			HeightWeight: ptr("220 lbs"),
			Record:       ptr("2-0-0"),
			Weight:       ptr("220 lbs"),
		},
		BioURL:     "https://www.espn.com/mma/fighter/bio/_/id/5130562/sam-okafor",
		StatsURL:   "https://www.espn.com/mma/fighter/stats/_/id/5130562/sam-okafor",
		HistoryURL: "https://www.espn.com/mma/fighter/history/_/id/5130562/sam-okafor",
		Fights:     []HistoryFight{},
		Candidates: map[Kind][]Candidate{
			KindRecord:       {{Value: "2-0-0", Confidence: 0.5, Snippet: "Sam Okafor (2-0-0) Bio | ESPN"}},
			KindHeightWeight: {{Value: "220 lbs", Confidence: 0.95, Snippet: "HT/WT 220 lbs"}},
			KindWeight:       {{Value: "220 lbs", Confidence: 0.6, Snippet: "HT/WT 220 lbs"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fighter mismatch (-want +got):\n%s", diff)
	}
}

func TestScraperFighter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "/fighter/bio/"):
			w.Write([]byte(bioPage))
		case strings.Contains(r.URL.Path, "/fighter/stats/"):
			w.Write([]byte(statsPage))
		case strings.Contains(r.URL.Path, "/fighter/history/"):
			w.Write([]byte(historyPage))
		default:
			w.Write([]byte(profilePage))
		}
	}))
	defer srv.Close()

	scraper, err := NewScraper(srv.URL, nil, scraperOptions())
	require.NoError(t, err)

	fighter, err := scraper.Fighter(context.Background(), srv.URL+"/mma/fighter/_/id/2335639/jon-jones")
	require.NoError(t, err)

	require.Equal(t, "2335639", fighter.ID)
	require.Equal(t, ptr("Jon Jones"), fighter.Name)
	require.Equal(t, ptr("28-1-0"), fighter.Record)

	// the stats rows join onto the history rows through the event id
	require.Len(t, fighter.Fights, 2)
	require.Equal(t, map[string]string{"TSL": "30", "TSA": "35", "% BODY": "40%"}, fighter.Fights[0].Striking)
	require.Equal(t, map[string]string{"SCBL": "5"}, fighter.Fights[0].Clinch)
	require.Nil(t, fighter.Fights[1].Striking)

	require.NotEmpty(t, fighter.Candidates[KindRecord])
}

func TestScraperSchedule(t *testing.T) {
	var sawPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawPath.Store(r.URL.Path)
		w.Write([]byte(schedulePage))
	}))
	defer srv.Close()

	scraper, err := NewScraper(srv.URL, nil, scraperOptions())
	require.NoError(t, err)

	events, err := scraper.Schedule(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, "600040478", events[0].ID)
	require.Equal(t, "/mma/schedule/_/year/2023", sawPath.Load())
}

func TestScraperEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(eventPage))
	}))
	defer srv.Close()

	// no renderer wired, so the card comes from the static markup
	scraper, err := NewScraper(srv.URL, nil, scraperOptions())
	require.NoError(t, err)

	event, err := scraper.Event(context.Background(), srv.URL+"/mma/fightcenter/_/id/600040478/league/ufc")
	require.NoError(t, err)
	require.Equal(t, "600040478", event.ID)
	require.Equal(t, ptr("UFC 285: Jones vs. Gane"), event.Name)
	require.Len(t, event.Fights, 3)
}
