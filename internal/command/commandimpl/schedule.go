package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/scheduler"
	"github.com/samber/lo"
)

const previewLimit = 10

func (c *CommandImpl) handlePlan(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	limit := previewLimit
	if arg := strings.TrimSpace(update.Message.CommandArguments()); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			_, err := c.Telegram.SendMessage(chatID, "Usage: /plan [count]")
			return err
		}
		limit = n
	}

	drafts, err := c.PostRepo.ListByStatus(ctx, domain.PostStatusDraft)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to load draft posts.")
		return fmt.Errorf("list draft posts: %w", err)
	}
	if len(drafts) == 0 {
		_, err := c.Telegram.SendMessage(chatID, "No draft posts to plan.")
		return err
	}

	posts := lo.Map(drafts, func(p *domain.Post, _ int) domain.Post { return *p })
	preview, err := c.Scheduler.Preview(posts, scheduler.DefaultConfig(c.Clock))
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to compute the plan: "+err.Error())
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Plan for %d draft post(s):\n", len(preview.Posts))
	for i, item := range preview.Posts {
		if i >= limit {
			fmt.Fprintf(&b, "… and %d more\n", len(preview.Posts)-limit)
			break
		}
		fmt.Fprintf(&b, "%s  day %d: %s\n",
			item.ScheduledDate.Format("Mon 01/02 3:04 PM"),
			item.Post.Day,
			firstLine(item.Post.Caption))
	}

	_, err = c.Telegram.SendMessage(chatID, strings.TrimRight(b.String(), "\n"))
	return err
}

func (c *CommandImpl) handleSchedule(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	cfg, err := c.parseScheduleArgs(update.Message.CommandArguments())
	if err != nil {
		_, sendErr := c.Telegram.SendMessage(chatID, err.Error())
		return sendErr
	}

	drafts, err := c.PostRepo.ListByStatus(ctx, domain.PostStatusDraft)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to load draft posts.")
		return fmt.Errorf("list draft posts: %w", err)
	}
	if len(drafts) == 0 {
		_, err := c.Telegram.SendMessage(chatID, "No draft posts to schedule.")
		return err
	}

	posts := lo.Map(drafts, func(p *domain.Post, _ int) domain.Post { return *p })
	records, err := c.Scheduler.Schedule(ctx, posts, cfg)
	if err != nil {
		var vErr *scheduler.ValidationError
		if errors.As(err, &vErr) {
			_, sendErr := c.Telegram.SendMessage(chatID, "Config rejected:\n- "+strings.Join(vErr.Messages, "\n- "))
			return sendErr
		}
		_, _ = c.Telegram.SendMessage(chatID, "Scheduling failed: "+err.Error())
		return err
	}

	msg := fmt.Sprintf("✅ Scheduled %d of %d draft post(s).", len(records), len(posts))
	if len(records) > 0 {
		msg += fmt.Sprintf("\nFirst publish: %s", records[0].ScheduledDate.Format("Mon 01/02 3:04 PM"))
	}
	_, err = c.Telegram.SendMessage(chatID, msg)
	return err
}

// parseScheduleArgs turns "start=2026-09-15 time=08:30 perday=2" style
// arguments into a config, starting from the defaults.
func (c *CommandImpl) parseScheduleArgs(args string) (scheduler.Config, error) {
	cfg := scheduler.DefaultConfig(c.Clock)

	for _, field := range strings.Fields(args) {
		key, value, found := strings.Cut(field, "=")
		if !found {
			return cfg, fmt.Errorf("Unrecognized argument %q. Use key=value pairs, see /help.", field)
		}

		switch strings.ToLower(key) {
		case "start":
			t, err := time.ParseInLocation("2006-01-02", value, c.Clock.Now().Location())
			if err != nil {
				return cfg, fmt.Errorf("Invalid start date %q. Use YYYY-MM-DD.", value)
			}
			cfg.StartDate = t
		case "time":
			cfg.PostTime = value
		case "cadence":
			cfg.Cadence = scheduler.Cadence(strings.ToLower(value))
			if cfg.Cadence != scheduler.CadenceDaily && cfg.Cadence != scheduler.CadenceCustom {
				return cfg, fmt.Errorf("Invalid cadence %q. Use daily or custom.", value)
			}
		case "interval":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("Invalid interval %q.", value)
			}
			cfg.CustomInterval = n
		case "perday":
			n, err := strconv.Atoi(value)
			if err != nil {
				return cfg, fmt.Errorf("Invalid perday %q.", value)
			}
			cfg.PostsPerDay = n
		case "skipweekends":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return cfg, fmt.Errorf("Invalid skipweekends %q. Use true or false.", value)
			}
			cfg.SkipWeekends = b
		default:
			return cfg, fmt.Errorf("Unknown option %q. See /help.", key)
		}
	}

	return cfg, nil
}

func firstLine(caption string) string {
	line, _, _ := strings.Cut(caption, "\n")
	const max = 60
	if runes := []rune(line); len(runes) > max {
		return string(runes[:max]) + "…"
	}
	return line
}
