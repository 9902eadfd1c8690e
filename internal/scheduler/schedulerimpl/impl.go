package schedulerimpl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

// Platform recorded on every schedule record. This is a single-site tool.
const Platform = "linkedin"

// multiPostSpacing separates same-day slots when more than one post lands on
// a day.
const multiPostSpacing = 4 * time.Hour

// postTimePattern is strict 24-hour HH:MM; a missing leading zero is
// rejected because the generated slots must be unambiguous.
var postTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type Opts struct {
	fx.In

	Clock             clockwork.Clock
	Logger            logger.Logger
	ScheduledPostRepo scheduledpost.Repository
}

type SchedulerImpl struct {
	Clock             clockwork.Clock
	Logger            logger.Logger
	ScheduledPostRepo scheduledpost.Repository
}

func New(opts Opts) *SchedulerImpl {
	return &SchedulerImpl{
		Clock:             opts.Clock,
		Logger:            opts.Logger.WithComponent("Scheduler"),
		ScheduledPostRepo: opts.ScheduledPostRepo,
	}
}

var _ scheduler.Client = (*SchedulerImpl)(nil)

// GenerateScheduleDates computes one publish timestamp per post. It is a
// pure function of its inputs: same count and config, same sequence.
//
// Walks day by day from startDate: weekends are skipped (when configured)
// without placing anything, up to postsPerDay slots are placed per posting
// day spaced four hours apart from postTime, and the day pointer advances
// by one day (daily cadence) or the custom interval once a day is full.
// Output order matches input post order; no reordering happens here.
func GenerateScheduleDates(postCount int, cfg scheduler.Config) []time.Time {
	hour, minute := parsePostTime(cfg.PostTime)

	perDay := cfg.PostsPerDay
	if perDay < 1 {
		perDay = 1
	}

	current := time.Date(
		cfg.StartDate.Year(), cfg.StartDate.Month(), cfg.StartDate.Day(),
		hour, minute, 0, 0, locationOf(cfg.StartDate),
	)

	dates := make([]time.Time, 0, postCount)
	dayCount := 0

	for len(dates) < postCount {
		if cfg.SkipWeekends && isWeekend(current) {
			current = current.AddDate(0, 0, 1)
			dayCount = 0
			continue
		}

		if dayCount < perDay {
			slot := current
			if perDay > 1 {
				slot = current.Add(time.Duration(dayCount) * multiPostSpacing)
			}
			dates = append(dates, slot)
			dayCount++
		}

		if dayCount >= perDay {
			step := 1
			if cfg.Cadence == scheduler.CadenceCustom && cfg.CustomInterval > 0 {
				step = cfg.CustomInterval
			}
			current = current.AddDate(0, 0, step)
			dayCount = 0
		}
	}

	return dates
}

// Validate checks every precondition and reports all failures at once.
func (s *SchedulerImpl) Validate(cfg scheduler.Config) error {
	var messages []string

	now := s.Clock.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if cfg.StartDate.Before(today) {
		messages = append(messages, "Start date cannot be in the past")
	}

	if !postTimePattern.MatchString(cfg.PostTime) {
		messages = append(messages, "Invalid time format. Use 24-hour HH:MM (e.g. 09:00)")
	}

	if cfg.Cadence == scheduler.CadenceCustom && cfg.CustomInterval < 1 {
		messages = append(messages, "Custom interval must be at least 1 day")
	}

	if cfg.PostsPerDay < 1 || cfg.PostsPerDay > 3 {
		messages = append(messages, "Posts per day must be between 1 and 3")
	}

	if len(messages) > 0 {
		return &scheduler.ValidationError{Messages: messages}
	}
	return nil
}

// Preview computes publish dates without persisting anything.
func (s *SchedulerImpl) Preview(posts []domain.Post, cfg scheduler.Config) (*scheduler.Preview, error) {
	if err := s.Validate(cfg); err != nil {
		return nil, err
	}

	dates := GenerateScheduleDates(len(posts), cfg)
	return &scheduler.Preview{
		Dates: dates,
		Posts: lo.Map(posts, func(p domain.Post, i int) domain.SchedulePreview {
			return domain.SchedulePreview{Post: p, ScheduledDate: dates[i]}
		}),
	}, nil
}

// Schedule validates, computes dates, and persists one record per post.
// Posts that already carry a record are left untouched.
func (s *SchedulerImpl) Schedule(ctx context.Context, posts []domain.Post, cfg scheduler.Config) ([]*domain.ScheduledPost, error) {
	if err := s.Validate(cfg); err != nil {
		return nil, err
	}

	dates := GenerateScheduleDates(len(posts), cfg)

	records := make([]*domain.ScheduledPost, 0, len(posts))
	for i, p := range posts {
		record := domain.ScheduledPost{
			ID:            uuid.NewString(),
			PostID:        p.ID,
			ScheduledDate: dates[i],
			Status:        domain.ScheduleStatusScheduled,
			Platform:      Platform,
		}

		if err := s.ScheduledPostRepo.Create(ctx, record); err != nil {
			if errors.Is(err, scheduledpost.ErrAlreadyExists) {
				s.Logger.Warn("Post is already scheduled, skipping", "post_id", p.ID)
				continue
			}
			return records, fmt.Errorf("persist schedule record for post %s: %w", p.ID, err)
		}

		records = append(records, &record)
	}

	s.Logger.Info("Batch scheduled", "posts", len(posts), "records_created", len(records))
	return records, nil
}

func parsePostTime(postTime string) (hour, minute int) {
	parts := strings.SplitN(postTime, ":", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute
}

func locationOf(t time.Time) *time.Location {
	if loc := t.Location(); loc != nil {
		return loc
	}
	return time.Local
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}
