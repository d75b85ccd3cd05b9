// Package crawler walks one statistics source end to end, strictly
// sequentially, appending every scraped record to per-stream JSONL
// files. The output files are the source of truth for resumability; a
// sqlite ledger additionally keeps run rows and failure attempts for
// the retry command.
package crawler

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/nathanmaher41/UFCWebScraper/services/crawler/db"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ufcscraper.services.crawler")

const (
	SourceUFCStats = "ufcstats"
	SourceESPN     = "espn"
)

// maxAttempts caps how often a failing url is retried before it is
// left alone.
const maxAttempts = 3

// Stream names one of the output feeds. The string doubles as the
// ledger kind and, with ".jsonl" appended, the file name.
type Stream string

const (
	Fighters Stream = "fighters"
	Fights   Stream = "fights"
	Events   Stream = "events"
)

func (s Stream) filename() string { return string(s) + ".jsonl" }

type Options struct {
	Source string
	OutDir string
	// Limit stops enumeration once that many primary items (fighters
	// for ufcstats, events for espn) were emitted. 0 means no limit.
	Limit int
}

// Crawler is single-run state: seen ids per stream, failure attempts
// per url, open sinks and the running summary. One item is in flight
// at a time; cancelling the context stops after the current item.
type Crawler struct {
	source string
	out    string
	limit  int
	qry    *db.Queries

	seen     map[Stream]map[string]bool
	attempts map[string]int
	sinks    map[Stream]*Sink
	summary  *Summary
}

// New prepares a crawl over one source: creates the output directory,
// rebuilds the seen-id sets from the JSONL streams and loads failure
// attempts from the ledger.
func New(ctx context.Context, database *sql.DB, opts Options) (*Crawler, error) {
	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	c := &Crawler{
		source:   opts.Source,
		out:      opts.OutDir,
		limit:    opts.Limit,
		qry:      db.New(database),
		seen:     map[Stream]map[string]bool{},
		attempts: map[string]int{},
		sinks:    map[Stream]*Sink{},
	}

	for _, stream := range []Stream{Fighters, Fights, Events} {
		ids, err := ScanIDs(filepath.Join(opts.OutDir, stream.filename()))
		if err != nil {
			return nil, fmt.Errorf("rebuild seen %s: %w", stream, err)
		}
		c.seen[stream] = ids
	}

	failures, err := c.qry.ListFailures(ctx, opts.Source)
	if err != nil {
		return nil, fmt.Errorf("load failure ledger: %w", err)
	}
	for _, failure := range failures {
		c.attempts[failure.URL] = int(failure.Attempts)
	}

	slog.Info("crawl state loaded",
		"source", opts.Source,
		"out", opts.OutDir,
		"seen_fighters", len(c.seen[Fighters]),
		"seen_fights", len(c.seen[Fights]),
		"seen_events", len(c.seen[Events]),
		"failed_urls", len(c.attempts))
	return c, nil
}

// Close flushes and closes the open output streams.
func (c *Crawler) Close() error {
	var firstErr error
	for _, sink := range c.sinks {
		if err := sink.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *Crawler) sink(stream Stream) (*Sink, error) {
	if sink, ok := c.sinks[stream]; ok {
		return sink, nil
	}
	sink, err := OpenSink(filepath.Join(c.out, stream.filename()))
	if err != nil {
		return nil, err
	}
	c.sinks[stream] = sink
	return sink, nil
}

// limitReached reports whether the primary-item cap is spent. It is
// checked before an item starts, so items never stop halfway.
func (c *Crawler) limitReached(primary Stream) bool {
	return c.limit > 0 && c.summary.Emitted[primary] >= c.limit
}

// emit appends the record to its stream and bookkeeps the success: the
// id joins the seen set, the ledger caches the completion and any
// failure entry for the url is cleared. Only the JSONL write can fail
// the run; ledger trouble is logged and ignored.
func (c *Crawler) emit(ctx context.Context, stream Stream, id, url string, record any) error {
	sink, err := c.sink(stream)
	if err != nil {
		return err
	}
	if err := sink.Write(record); err != nil {
		return err
	}
	c.seen[stream][id] = true
	c.summary.Emitted[stream]++

	err = c.qry.MarkCompleted(ctx, db.MarkCompletedParams{
		Source:      c.source,
		Stream:      string(stream),
		ID:          id,
		URL:         url,
		CompletedAt: time.Now().Unix(),
	})
	if err != nil {
		slog.Warn("ledger completion write failed", "stream", stream, "id", id, "err", err)
	}
	if c.attempts[url] > 0 {
		delete(c.attempts, url)
		err := c.qry.ClearFailure(ctx, db.ClearFailureParams{
			Source: c.source,
			Stream: string(stream),
			URL:    url,
		})
		if err != nil {
			slog.Warn("ledger failure clear failed", "url", url, "err", err)
		}
	}
	return nil
}

// fail counts one item failure and records the attempt in the ledger.
func (c *Crawler) fail(ctx context.Context, stream Stream, url string, cause error) {
	c.summary.classify(cause)
	c.attempts[url]++
	slog.Warn("item failed",
		"stream", stream, "url", url, "attempt", c.attempts[url], "err", cause)

	err := c.qry.RecordFailure(ctx, db.RecordFailureParams{
		Source:   c.source,
		Stream:   string(stream),
		URL:      url,
		Error:    cause.Error(),
		FailedAt: time.Now().Unix(),
	})
	if err != nil {
		slog.Warn("ledger failure write failed", "url", url, "err", err)
	}
}

func (c *Crawler) startRun(ctx context.Context) int64 {
	id, err := c.qry.CreateRun(ctx, db.CreateRunParams{
		Source:    c.source,
		StartedAt: c.summary.Started.Unix(),
	})
	if err != nil {
		slog.Warn("ledger run insert failed", "err", err)
		return 0
	}
	return id
}

func (c *Crawler) finishRun(ctx context.Context, runID int64) {
	c.summary.Finished = time.Now()
	if runID == 0 {
		return
	}
	err := c.qry.FinishRun(ctx, db.FinishRunParams{
		FinishedAt: c.summary.Finished.Unix(),
		Emitted:    int64(c.summary.emitted()),
		Skipped:    int64(c.summary.Skipped),
		Failed:     int64(c.summary.failures()),
		ID:         runID,
	})
	if err != nil {
		slog.Warn("ledger run update failed", "err", err)
	}
}
