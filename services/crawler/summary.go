package crawler

import (
	"errors"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nathanmaher41/UFCWebScraper/lib/fetch"
	"github.com/nathanmaher41/UFCWebScraper/lib/urlid"
)

// Summary holds the counts for one run. Emitted has a key for every
// stream the source writes, so zero counts still show up in the table.
type Summary struct {
	Source   string
	Started  time.Time
	Finished time.Time

	Emitted map[Stream]int
	Skipped int

	FetchFailures int
	ParseFailures int
	InvalidURLs   int
	OtherFailures int
}

func newSummary(source string, streams ...Stream) *Summary {
	emitted := make(map[Stream]int, len(streams))
	for _, stream := range streams {
		emitted[stream] = 0
	}
	return &Summary{
		Source:  source,
		Started: time.Now(),
		Emitted: emitted,
	}
}

// classify buckets one item failure by its place in the error taxonomy.
func (s *Summary) classify(err error) {
	var fetchFailure *fetch.Failure
	var parseFailure *fetch.ParseFailure
	switch {
	case errors.Is(err, urlid.ErrInvalidURL):
		s.InvalidURLs++
	case errors.As(err, &parseFailure):
		s.ParseFailures++
	case errors.As(err, &fetchFailure):
		s.FetchFailures++
	default:
		s.OtherFailures++
	}
}

func (s *Summary) failures() int {
	return s.FetchFailures + s.ParseFailures + s.InvalidURLs + s.OtherFailures
}

func (s *Summary) emitted() int {
	total := 0
	for _, n := range s.Emitted {
		total += n
	}
	return total
}

// Render draws the run counts as a table.
func (s *Summary) Render() string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle("crawl summary: %s", s.Source)
	t.AppendHeader(table.Row{"Metric", "Count"})
	for _, stream := range []Stream{Fighters, Fights, Events} {
		if n, ok := s.Emitted[stream]; ok {
			t.AppendRow(table.Row{string(stream) + " emitted", n})
		}
	}
	t.AppendRow(table.Row{"skipped", s.Skipped})
	t.AppendRow(table.Row{"fetch failures", s.FetchFailures})
	t.AppendRow(table.Row{"parse failures", s.ParseFailures})
	t.AppendRow(table.Row{"invalid urls", s.InvalidURLs})
	t.AppendRow(table.Row{"other failures", s.OtherFailures})
	t.AppendFooter(table.Row{"elapsed", s.Finished.Sub(s.Started).Round(time.Second)})
	return t.Render()
}
