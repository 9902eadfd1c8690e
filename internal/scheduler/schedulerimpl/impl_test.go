package schedulerimpl

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/content-composer/linkedin-autopilot/pkg/logger"
	"github.com/jonboulle/clockwork"
)

type fakeScheduledPostRepo struct {
	scheduledpost.Repository

	created  []domain.ScheduledPost
	existing map[string]bool // post ids that already have a record
	fail     error
}

func (r *fakeScheduledPostRepo) Create(_ context.Context, record domain.ScheduledPost) error {
	if r.fail != nil {
		return r.fail
	}
	if r.existing[record.PostID] {
		return scheduledpost.ErrAlreadyExists
	}
	r.created = append(r.created, record)
	return nil
}

func newTestScheduler(t *testing.T, repo *fakeScheduledPostRepo) *SchedulerImpl {
	t.Helper()
	return &SchedulerImpl{
		Clock:             clockwork.NewFakeClockAt(time.Date(2025, 12, 30, 15, 0, 0, 0, time.UTC)),
		Logger:            logger.New(logger.Opts{}),
		ScheduledPostRepo: repo,
	}
}

func baseConfig() scheduler.Config {
	return scheduler.Config{
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), // a Thursday
		PostTime:    "09:00",
		Cadence:     scheduler.CadenceDaily,
		PostsPerDay: 1,
	}
}

func TestGenerateScheduleDatesIsDeterministic(t *testing.T) {
	cfg := baseConfig()
	first := GenerateScheduleDates(5, cfg)
	second := GenerateScheduleDates(5, cfg)

	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("date %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestGenerateScheduleDatesDaily(t *testing.T) {
	dates := GenerateScheduleDates(3, baseConfig())

	if len(dates) != 3 {
		t.Fatalf("got %d dates, want 3", len(dates))
	}
	want := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, d := range dates {
		if !d.Equal(want) {
			t.Errorf("date %d = %v, want %v", i, d, want)
		}
		want = want.AddDate(0, 0, 1)
	}
}

func TestGenerateScheduleDatesMultiplePerDay(t *testing.T) {
	cfg := baseConfig()
	cfg.PostsPerDay = 3

	dates := GenerateScheduleDates(4, cfg)

	day1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	wants := []time.Time{
		day1,
		day1.Add(4 * time.Hour),
		day1.Add(8 * time.Hour),
		day1.AddDate(0, 0, 1),
	}
	for i, want := range wants {
		if !dates[i].Equal(want) {
			t.Errorf("date %d = %v, want %v", i, dates[i], want)
		}
	}
}

func TestGenerateScheduleDatesSkipsWeekends(t *testing.T) {
	cfg := baseConfig()
	cfg.StartDate = time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC) // a Saturday
	cfg.SkipWeekends = true

	dates := GenerateScheduleDates(2, cfg)

	wants := []time.Time{
		time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC), // Monday
		time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC),
	}
	for i, want := range wants {
		if !dates[i].Equal(want) {
			t.Errorf("date %d = %v, want %v", i, dates[i], want)
		}
	}
}

func TestGenerateScheduleDatesCustomInterval(t *testing.T) {
	cfg := baseConfig()
	cfg.Cadence = scheduler.CadenceCustom
	cfg.CustomInterval = 3

	dates := GenerateScheduleDates(2, cfg)

	if !dates[1].Equal(dates[0].AddDate(0, 0, 3)) {
		t.Errorf("second date = %v, want three days after %v", dates[1], dates[0])
	}
}

func TestValidate(t *testing.T) {
	s := newTestScheduler(t, &fakeScheduledPostRepo{})

	tests := []struct {
		name    string
		mutate  func(*scheduler.Config)
		wantErr string
	}{
		{"valid config", func(c *scheduler.Config) {}, ""},
		{"start date today is allowed", func(c *scheduler.Config) {
			c.StartDate = time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)
		}, ""},
		{"start date in the past", func(c *scheduler.Config) {
			c.StartDate = time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
		}, "past"},
		{"missing leading zero", func(c *scheduler.Config) { c.PostTime = "9:00" }, "time format"},
		{"hour out of range", func(c *scheduler.Config) { c.PostTime = "25:00" }, "time format"},
		{"minute out of range", func(c *scheduler.Config) { c.PostTime = "09:60" }, "time format"},
		{"zero posts per day", func(c *scheduler.Config) { c.PostsPerDay = 0 }, "between 1 and 3"},
		{"four posts per day", func(c *scheduler.Config) { c.PostsPerDay = 4 }, "between 1 and 3"},
		{"custom cadence without interval", func(c *scheduler.Config) {
			c.Cadence = scheduler.CadenceCustom
			c.CustomInterval = 0
		}, "interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)

			err := s.Validate(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}

			var vErr *scheduler.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCollectsAllMessages(t *testing.T) {
	s := newTestScheduler(t, &fakeScheduledPostRepo{})

	cfg := baseConfig()
	cfg.PostTime = "9:00"
	cfg.PostsPerDay = 0

	var vErr *scheduler.ValidationError
	if err := s.Validate(cfg); !errors.As(err, &vErr) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if len(vErr.Messages) != 2 {
		t.Errorf("got %d messages, want 2: %v", len(vErr.Messages), vErr.Messages)
	}
}

func TestPreviewPairsPostsWithDates(t *testing.T) {
	s := newTestScheduler(t, &fakeScheduledPostRepo{})
	posts := []domain.Post{{ID: "a", Day: 1}, {ID: "b", Day: 2}}

	preview, err := s.Preview(posts, baseConfig())
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if len(preview.Posts) != 2 {
		t.Fatalf("got %d preview entries, want 2", len(preview.Posts))
	}
	for i, item := range preview.Posts {
		if item.Post.ID != posts[i].ID {
			t.Errorf("entry %d post = %q, want %q", i, item.Post.ID, posts[i].ID)
		}
		if !item.ScheduledDate.Equal(preview.Dates[i]) {
			t.Errorf("entry %d date mismatch", i)
		}
	}
}

func TestSchedulePersistsRecordsInOrder(t *testing.T) {
	repo := &fakeScheduledPostRepo{}
	s := newTestScheduler(t, repo)
	posts := []domain.Post{{ID: "a", Day: 1}, {ID: "b", Day: 2}, {ID: "c", Day: 3}}

	records, err := s.Schedule(context.Background(), posts, baseConfig())
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	wantDates := []time.Time{
		time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 3, 9, 0, 0, 0, time.UTC),
	}
	for i, record := range records {
		if record.PostID != posts[i].ID {
			t.Errorf("record %d post = %q, want %q", i, record.PostID, posts[i].ID)
		}
		if !record.ScheduledDate.Equal(wantDates[i]) {
			t.Errorf("record %d date = %v, want %v", i, record.ScheduledDate, wantDates[i])
		}
		if record.Status != domain.ScheduleStatusScheduled {
			t.Errorf("record %d status = %q, want %q", i, record.Status, domain.ScheduleStatusScheduled)
		}
		if record.Platform != Platform {
			t.Errorf("record %d platform = %q, want %q", i, record.Platform, Platform)
		}
	}
}

func TestScheduleSkipsAlreadyScheduledPosts(t *testing.T) {
	repo := &fakeScheduledPostRepo{existing: map[string]bool{"b": true}}
	s := newTestScheduler(t, repo)
	posts := []domain.Post{{ID: "a", Day: 1}, {ID: "b", Day: 2}, {ID: "c", Day: 3}}

	records, err := s.Schedule(context.Background(), posts, baseConfig())
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].PostID != "a" || records[1].PostID != "c" {
		t.Errorf("records = [%s %s], want [a c]", records[0].PostID, records[1].PostID)
	}
}

func TestScheduleRejectsInvalidConfig(t *testing.T) {
	repo := &fakeScheduledPostRepo{}
	s := newTestScheduler(t, repo)

	cfg := baseConfig()
	cfg.PostTime = "9:00"

	if _, err := s.Schedule(context.Background(), []domain.Post{{ID: "a"}}, cfg); err == nil {
		t.Fatal("Schedule() accepted an invalid config")
	}
	if len(repo.created) != 0 {
		t.Errorf("invalid config still created %d records", len(repo.created))
	}
}
