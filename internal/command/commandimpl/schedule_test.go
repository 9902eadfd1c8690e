package commandimpl

import (
	"testing"
	"time"

	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/jonboulle/clockwork"
)

func testCommand() *CommandImpl {
	return &CommandImpl{
		Clock: clockwork.NewFakeClockAt(time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)),
	}
}

func TestParseScheduleArgsDefaults(t *testing.T) {
	c := testCommand()

	cfg, err := c.parseScheduleArgs("")
	if err != nil {
		t.Fatalf("parseScheduleArgs() error = %v", err)
	}

	want := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	if !cfg.StartDate.Equal(want) {
		t.Errorf("default start = %v, want tomorrow %v", cfg.StartDate, want)
	}
	if cfg.PostTime != "09:00" || cfg.Cadence != scheduler.CadenceDaily || cfg.PostsPerDay != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseScheduleArgsOverrides(t *testing.T) {
	c := testCommand()

	cfg, err := c.parseScheduleArgs("start=2026-02-01 time=18:30 cadence=custom interval=2 perday=3 skipweekends=true")
	if err != nil {
		t.Fatalf("parseScheduleArgs() error = %v", err)
	}

	if got := cfg.StartDate.Format("2006-01-02"); got != "2026-02-01" {
		t.Errorf("start = %s, want 2026-02-01", got)
	}
	if cfg.PostTime != "18:30" {
		t.Errorf("time = %q, want 18:30", cfg.PostTime)
	}
	if cfg.Cadence != scheduler.CadenceCustom || cfg.CustomInterval != 2 {
		t.Errorf("cadence = %q interval %d, want custom 2", cfg.Cadence, cfg.CustomInterval)
	}
	if cfg.PostsPerDay != 3 || !cfg.SkipWeekends {
		t.Errorf("perday = %d skipweekends %v, want 3 true", cfg.PostsPerDay, cfg.SkipWeekends)
	}
}

func TestParseScheduleArgsRejectsGarbage(t *testing.T) {
	c := testCommand()

	tests := []string{
		"notakeyvalue",
		"start=01-02-2026",
		"cadence=weekly",
		"interval=abc",
		"perday=lots",
		"skipweekends=maybe",
		"frequency=daily",
	}

	for _, args := range tests {
		if _, err := c.parseScheduleArgs(args); err == nil {
			t.Errorf("parseScheduleArgs(%q) accepted invalid input", args)
		}
	}
}
