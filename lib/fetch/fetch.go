// Package fetch owns all network I/O for the scrapers: a politely
// paced resty client with retry and backoff, plus a headless browser
// renderer for pages whose content only exists after script runs.
package fetch

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/nathanmaher41/UFCWebScraper/lib/htmlutil"
	"github.com/nathanmaher41/UFCWebScraper/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/mazen160/go-random"
	"golang.org/x/time/rate"
)

const (
	DefaultMinDelay = time.Second
	DefaultMaxDelay = time.Second * 3

	defaultTimeout   = time.Second * 30
	defaultRetries   = 3
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

	// percent of requests that rest for several multiples of the
	// usual delay, so long crawls don't look metronomic
	extendedBreakOdds = 5
)

type Options struct {
	// MinDelay and MaxDelay bound the randomized spacing between
	// request starts.
	MinDelay time.Duration
	MaxDelay time.Duration
	Timeout  time.Duration
	// MaxRetries is the number of additional attempts after the
	// first on transient failures.
	MaxRetries int
	UserAgent  string
	// AllowedDomains restricts redirects to the named hosts when
	// non-empty.
	AllowedDomains []string
}

func (o Options) withDefaults() Options {
	if o.MinDelay <= 0 {
		o.MinDelay = DefaultMinDelay
	}
	if o.MaxDelay < o.MinDelay {
		o.MaxDelay = o.MinDelay
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultRetries
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUserAgent
	}
	return o
}

type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	opts    Options

	// backoff is the unit for exponential retry waits, and
	// rateLimitWait bounds the pause after a 429.
	backoff       time.Duration
	rateLimitWait [2]time.Duration
}

func NewClient(opts Options) (*Client, error) {
	opts = opts.withDefaults()

	client := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", opts.UserAgent)
	client.SetTimeout(opts.Timeout)
	if len(opts.AllowedDomains) > 0 {
		client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(opts.AllowedDomains...))
	}

	c := &Client{
		http:          client,
		limiter:       rate.NewLimiter(rate.Every(opts.MinDelay), 1),
		opts:          opts,
		backoff:       time.Second,
		rateLimitWait: [2]time.Duration{time.Second * 60, time.Second * 120},
	}

	client.SetRetryCount(opts.MaxRetries)
	client.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return true
		}
		code := res.StatusCode()
		return code == http.StatusTooManyRequests || code >= 500
	})
	client.SetRetryAfter(func(_ *resty.Client, res *resty.Response) (time.Duration, error) {
		if res != nil && res.StatusCode() == http.StatusTooManyRequests {
			wait := randomDuration(c.rateLimitWait[0], c.rateLimitWait[1])
			slog.Warn("rate limited by server", "url", res.Request.URL, "wait", wait)
			return wait, nil
		}
		attempt := 1
		if res != nil && res.Request.Attempt > 0 {
			attempt = res.Request.Attempt
		}
		return c.backoff*(1<<attempt) + randomDuration(0, c.backoff), nil
	})
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return c.pace(req.Context())
	})

	telemetry.InstrumentResty(client, "lib/fetch")
	return c, nil
}

// pace enforces the polite-crawl contract: at least MinDelay between
// request starts, a uniformly random extra delay up to MaxDelay, and
// the occasional longer rest. Runs again before every retry attempt.
func (c *Client) pace(ctx context.Context) error {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return err
	}

	extra := randomDuration(0, c.opts.MaxDelay-c.opts.MinDelay)
	if odds, err := random.IntRange(0, 100); err == nil && odds < extendedBreakOdds {
		rest := randomDuration(c.opts.MaxDelay*5, c.opts.MaxDelay*10)
		slog.Debug("taking an extended break", "duration", rest)
		extra += rest
	}
	if extra <= 0 {
		return nil
	}

	timer := time.NewTimer(extra)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Get fetches a url and returns the response body. Transient errors
// are retried with backoff; anything still failing afterwards comes
// back as a *Failure so callers can skip the item and move on.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	res, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &Failure{URL: url, Err: err}
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &Failure{URL: url, Status: res.StatusCode()}
	}
	return res.Body(), nil
}

// GetDocument fetches a url and parses the body into a document.
func (c *Client) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := htmlutil.Parse(body)
	if err != nil {
		return nil, &ParseFailure{URL: url, Err: err}
	}
	return doc, nil
}

func randomDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	ms, err := random.IntRange(int(min.Milliseconds()), int(max.Milliseconds()))
	if err != nil {
		return min
	}
	return time.Duration(ms) * time.Millisecond
}
