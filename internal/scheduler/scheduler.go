package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/jonboulle/clockwork"
)

// Cadence is the day-to-day spacing policy for scheduled posts.
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceCustom Cadence = "custom"
)

// Config drives one scheduling run.
type Config struct {
	StartDate      time.Time
	PostTime       string // 24-hour "HH:MM"
	Cadence        Cadence
	CustomInterval int // days between posting days, cadence "custom" only
	PostsPerDay    int // 1..3
	SkipWeekends   bool
}

// DefaultConfig is tomorrow at 09:00, one post per day, daily cadence.
func DefaultConfig(clock clockwork.Clock) Config {
	now := clock.Now()
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return Config{
		StartDate:   tomorrow,
		PostTime:    "09:00",
		Cadence:     CadenceDaily,
		PostsPerDay: 1,
	}
}

// ValidationError collects every precondition a config failed. The engine
// never partially applies an invalid config.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid scheduling config: " + strings.Join(e.Messages, "; ")
}

// Preview is the dry-run result: one date per post, paired in input order.
type Preview struct {
	Dates []time.Time
	Posts []domain.SchedulePreview
}

//go:generate go run go.uber.org/mock/mockgen -source=scheduler.go -destination=mocks/mock.go
type Client interface {
	// Validate checks a config without applying anything.
	Validate(cfg Config) error

	// Preview computes publish dates without persisting; safe to call
	// repeatedly for a live preview.
	Preview(posts []domain.Post, cfg Config) (*Preview, error)

	// Schedule validates, computes dates, and persists one schedule record
	// per post. Output order matches input order.
	Schedule(ctx context.Context, posts []domain.Post, cfg Config) ([]*domain.ScheduledPost, error)
}
