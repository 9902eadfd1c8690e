package browserimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/browser"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
)

type fakeQuerier struct {
	matches map[string]bool  // strategy name -> probe result
	fails   map[string]error // strategy name -> probe error
	probed  []string
}

func (q *fakeQuerier) Probe(_ context.Context, s Strategy, _ string) (bool, error) {
	q.probed = append(q.probed, s.Name)
	if err := q.fails[s.Name]; err != nil {
		return false, err
	}
	return q.matches[s.Name], nil
}

func testStrategies() []Strategy {
	return []Strategy{
		{Name: "primary", Selector: "button.primary"},
		{Name: "fallback", Selector: "button", Text: "Start a post"},
	}
}

func TestFindPrefersEarlierStrategy(t *testing.T) {
	q := &fakeQuerier{matches: map[string]bool{"primary": true, "fallback": true}}
	l := NewLocator(q, 10*time.Millisecond, logger.New(logger.Opts{}))

	match, err := l.Find(context.Background(), testStrategies(), time.Second)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if match.Strategy.Name != "primary" {
		t.Errorf("matched strategy = %q, want %q", match.Strategy.Name, "primary")
	}
	if match.Selector == "" {
		t.Error("match selector is empty, follow-up actions cannot address the element")
	}
}

func TestFindFallsBackWhenPrimaryMisses(t *testing.T) {
	q := &fakeQuerier{matches: map[string]bool{"fallback": true}}
	l := NewLocator(q, 10*time.Millisecond, logger.New(logger.Opts{}))

	match, err := l.Find(context.Background(), testStrategies(), time.Second)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if match.Strategy.Name != "fallback" {
		t.Errorf("matched strategy = %q, want %q", match.Strategy.Name, "fallback")
	}
}

func TestFindSkipsBrokenSelector(t *testing.T) {
	q := &fakeQuerier{
		fails:   map[string]error{"primary": errors.New("invalid selector")},
		matches: map[string]bool{"fallback": true},
	}
	l := NewLocator(q, 10*time.Millisecond, logger.New(logger.Opts{}))

	match, err := l.Find(context.Background(), testStrategies(), time.Second)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if match.Strategy.Name != "fallback" {
		t.Errorf("matched strategy = %q, want %q", match.Strategy.Name, "fallback")
	}
}

func TestFindTimesOutWithAttemptedStrategies(t *testing.T) {
	q := &fakeQuerier{}
	l := NewLocator(q, 5*time.Millisecond, logger.New(logger.Opts{}))

	_, err := l.Find(context.Background(), testStrategies(), 20*time.Millisecond)

	var notFound *browser.ElementNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Find() error = %v, want *ElementNotFoundError", err)
	}
	if len(notFound.Strategies) != 2 {
		t.Errorf("attempted strategies = %d, want 2", len(notFound.Strategies))
	}
	if len(q.probed) < 4 {
		t.Errorf("expected at least two poll passes, got %d probes", len(q.probed))
	}
}

func TestFindStopsOnCancelledContext(t *testing.T) {
	q := &fakeQuerier{}
	l := NewLocator(q, 10*time.Millisecond, logger.New(logger.Opts{}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Find(ctx, testStrategies(), time.Second)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Find() error = %v, want context.Canceled", err)
	}
}
