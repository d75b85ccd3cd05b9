package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer owns a single headless browser session. Pages that need
// script execution render in their own tab so one bad page can't
// wedge the browser for the rest of the run.
type Renderer struct {
	browser       context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
}

func NewRenderer(ctx context.Context, userAgent string) (*Renderer, error) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.UserAgent(userAgent),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browser, browserCancel := chromedp.NewContext(allocCtx)

	// launch eagerly so a missing chrome binary surfaces at startup
	// instead of mid-crawl
	err := chromedp.Run(browser)
	if err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("start headless browser: %w", err)
	}

	return &Renderer{
		browser:       browser,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
	}, nil
}

func (r *Renderer) Close() {
	r.browserCancel()
	r.allocCancel()
}

type RenderOptions struct {
	// WaitSelector is a css selector the page must produce before
	// capture. Defaults to "body".
	WaitSelector string
	// ExpandSelector names elements to click before capture, used
	// for collapsed sections the site only fills in on demand.
	ExpandSelector string
	// Settle is extra time given to the page after interactions.
	Settle  time.Duration
	Timeout time.Duration
}

// Render navigates a fresh tab to the url and returns the markup
// after scripts have populated it.
func (r *Renderer) Render(ctx context.Context, url string, opts RenderOptions) ([]byte, error) {
	if opts.WaitSelector == "" {
		opts.WaitSelector = "body"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Second * 45
	}

	tab, cancelTab := chromedp.NewContext(r.browser)
	defer cancelTab()
	tab, cancelTimeout := context.WithTimeout(tab, opts.Timeout)
	defer cancelTimeout()

	// bridge the caller's cancellation into the tab
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			cancelTab()
		case <-done:
		}
	}()

	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady(opts.WaitSelector, chromedp.ByQuery),
	}
	if opts.ExpandSelector != "" {
		script := fmt.Sprintf(
			`document.querySelectorAll(%q).forEach((el) => { try { el.click() } catch (e) {} })`,
			opts.ExpandSelector,
		)
		actions = append(actions, chromedp.Evaluate(script, nil))
	}
	if opts.Settle > 0 {
		actions = append(actions, chromedp.Sleep(opts.Settle))
	}
	var html string
	actions = append(actions, chromedp.OuterHTML("html", &html))

	err := chromedp.Run(tab, actions...)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	return []byte(html), nil
}
