package browserimpl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/pkg/config"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"go.uber.org/fx"
)

// evalTimeout bounds a single CDP round-trip. Locator polling supplies the
// longer, user-visible timeout on top of this.
const evalTimeout = 3 * time.Second

type Opts struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger logger.Logger
}

// ChromeImpl drives the LinkedIn composer through an existing Chrome
// instance over the DevTools protocol. The browser is expected to be logged
// in already; this code never touches authentication.
type ChromeImpl struct {
	cfg     *config.Config
	logger  logger.Logger
	locator *Locator

	browserCtx context.Context
	cancels    []context.CancelFunc
}

var _ browser.Client = (*ChromeImpl)(nil)

func New(opts Opts) *ChromeImpl {
	c := &ChromeImpl{
		cfg:    opts.Config,
		logger: opts.Logger.WithComponent("Browser"),
	}
	c.locator = NewLocator(&chromeQuerier{c: c}, opts.Config.Automation.LocatorPoll, c.logger)

	opts.LC.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			allocCtx, allocCancel := chromedp.NewRemoteAllocator(context.Background(), c.cfg.Browser.DevToolsURL)
			tabCtx, tabCancel := chromedp.NewContext(allocCtx)
			c.browserCtx = tabCtx
			c.cancels = []context.CancelFunc{tabCancel, allocCancel}

			// Activate the automation context on the feed. Failure here is
			// not fatal: the liveness probe gates every batch anyway, and
			// the operator may prefer to navigate by hand.
			if err := c.run(ctx, 30*time.Second, chromedp.Navigate(c.cfg.Browser.FeedURL)); err != nil {
				c.logger.Warn("Could not open the LinkedIn feed, batches will fail the liveness probe until the page is ready",
					"devtools_url", c.cfg.Browser.DevToolsURL, "error", err)
				return nil
			}
			c.logger.Info("Attached to Chrome", "feed_url", c.cfg.Browser.FeedURL)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			for _, cancel := range c.cancels {
				cancel()
			}
			return nil
		},
	})

	return c
}

// Ping reports whether the attached tab is a fully loaded LinkedIn page.
func (c *ChromeImpl) Ping(ctx context.Context) error {
	if c.browserCtx == nil {
		return fmt.Errorf("%w: browser session not started", browser.ErrNotConnected)
	}

	var location, readyState string
	err := c.run(ctx, 10*time.Second,
		chromedp.Location(&location),
		chromedp.Evaluate(`document.readyState`, &readyState),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", browser.ErrNotConnected, err)
	}
	if !strings.Contains(location, "linkedin.com") {
		return fmt.Errorf("%w: current page is %s", browser.ErrNotConnected, location)
	}
	if readyState != "complete" {
		return fmt.Errorf("%w: document readyState is %s", browser.ErrNotConnected, readyState)
	}
	return nil
}

// run executes chromedp actions on the attached tab, bounded by timeout and
// by the caller's context.
func (c *ChromeImpl) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	rctx, cancel := context.WithTimeout(c.browserCtx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(rctx, actions...)
}

// find locates one composer control through its fallback chain.
func (c *ChromeImpl) find(ctx context.Context, strategies []Strategy) (Match, error) {
	return c.locator.Find(ctx, strategies, c.cfg.Automation.LocatorTimeout)
}

// click activates a previously located element.
func (c *ChromeImpl) click(ctx context.Context, m Match) error {
	if err := c.run(ctx, evalTimeout, chromedp.Click(m.Selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click %s: %w", m.Strategy.Name, err)
	}
	return nil
}

// eval runs a page script that reports success as a boolean.
func (c *ChromeImpl) eval(ctx context.Context, script, what string) error {
	var ok bool
	if err := c.run(ctx, evalTimeout, chromedp.Evaluate(script, &ok)); err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if !ok {
		return fmt.Errorf("%s: element disappeared before the script ran", what)
	}
	return nil
}

// sleep is a context-aware settle delay. Every DOM mutation is followed by
// one because the page re-renders asynchronously with no readiness signal.
func (c *ChromeImpl) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type chromeQuerier struct {
	c *ChromeImpl
}

var _ Querier = (*chromeQuerier)(nil)

func (q *chromeQuerier) Probe(ctx context.Context, s Strategy, token string) (bool, error) {
	var found bool
	if err := q.c.run(ctx, evalTimeout, chromedp.Evaluate(probeScript(s, token), &found)); err != nil {
		return false, err
	}
	return found, nil
}
