package browserimpl

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
)

// targetAttr is the private attribute a successful probe stamps on the
// matched element so follow-up actions can address it by a stable selector.
const targetAttr = "data-autopilot-target"

// Strategy is one way of finding a composer control. Strategies are tried in
// order; earlier entries are the more specific/stable ones, later entries
// are broader fallbacks. Order encodes preference, not correctness.
type Strategy struct {
	Name     string
	Selector string // CSS selector for the candidate set
	Text     string // optional: candidate textContent must contain this
	Closest  string // optional: climb to the closest ancestor matching this
}

// Match is a located element, addressable through the tag attribute.
type Match struct {
	Strategy Strategy
	Selector string
}

// Querier evaluates a single strategy against the current document and tags
// the first visible candidate. Implementations must be read-only apart from
// the tag attribute.
type Querier interface {
	Probe(ctx context.Context, s Strategy, token string) (bool, error)
}

// Locator polls a fallback chain of strategies until one yields a visible
// element or the timeout elapses. LinkedIn's DOM is a third-party SPA with
// no stable contract, so the fallback chain is the resilience mechanism.
type Locator struct {
	querier Querier
	poll    time.Duration
	logger  logger.Logger
	seq     atomic.Uint64
}

func NewLocator(q Querier, poll time.Duration, log logger.Logger) *Locator {
	if poll <= 0 {
		poll = 200 * time.Millisecond
	}
	return &Locator{
		querier: q,
		poll:    poll,
		logger:  log.WithComponent("Locator"),
	}
}

// Find returns the first strategy's visible match, preferring earlier
// strategies on every poll pass. Hidden duplicates (off-screen templates,
// display:none clones) never match because probes require a rendered box.
func (l *Locator) Find(ctx context.Context, strategies []Strategy, timeout time.Duration) (Match, error) {
	deadline := time.Now().Add(timeout)
	token := strconv.FormatUint(l.seq.Add(1), 10)

	for {
		for _, s := range strategies {
			ok, err := l.querier.Probe(ctx, s, token)
			if err != nil {
				// A broken selector must not mask the fallbacks behind it.
				l.logger.Debug("Probe failed", "strategy", s.Name, "error", err)
				continue
			}
			if ok {
				l.logger.Debug("Matched element", "strategy", s.Name, "selector", s.Selector)
				return Match{
					Strategy: s,
					Selector: fmt.Sprintf(`[%s=%q]`, targetAttr, token),
				}, nil
			}
		}

		if time.Now().After(deadline) {
			break
		}

		t := time.NewTimer(l.poll)
		select {
		case <-ctx.Done():
			t.Stop()
			return Match{}, ctx.Err()
		case <-t.C:
		}
	}

	attempted := make([]string, len(strategies))
	for i, s := range strategies {
		attempted[i] = fmt.Sprintf("%s=%q", s.Name, s.Selector)
	}
	return Match{}, &browser.ElementNotFoundError{Strategies: attempted, Timeout: timeout}
}
