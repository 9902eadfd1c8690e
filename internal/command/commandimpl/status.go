package commandimpl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/content-composer/linkedin-autopilot/internal/domain"
	"github.com/content-composer/linkedin-autopilot/internal/repositories/scheduledpost"
	"github.com/content-composer/linkedin-autopilot/pkg/formatter"
)

func (c *CommandImpl) handleStatus(ctx context.Context, chatID int64) error {
	postCounts, err := c.PostRepo.CountByStatus(ctx)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to read post counts.")
		return fmt.Errorf("count posts by status: %w", err)
	}

	scheduleCounts, err := c.ScheduledPostRepo.CountByStatus(ctx)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Failed to read schedule counts.")
		return fmt.Errorf("count schedule records by status: %w", err)
	}

	var b strings.Builder
	b.WriteString("📊 Content status\n\nPosts:\n")
	for _, s := range []domain.PostStatus{domain.PostStatusDraft, domain.PostStatusScheduled, domain.PostStatusPublished} {
		fmt.Fprintf(&b, "  %s: %s\n", s, formatter.FormatNumber(postCounts[s]))
	}
	b.WriteString("\nSchedule records:\n")
	for _, s := range []domain.ScheduleStatus{domain.ScheduleStatusDraft, domain.ScheduleStatusScheduled, domain.ScheduleStatusPublished} {
		fmt.Fprintf(&b, "  %s: %s\n", s, formatter.FormatNumber(scheduleCounts[s]))
	}

	_, err = c.Telegram.SendMessage(chatID, strings.TrimRight(b.String(), "\n"))
	return err
}

func (c *CommandImpl) handleWhen(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	postID := strings.TrimSpace(update.Message.CommandArguments())
	if postID == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a post id: /when <post_id>")
		return err
	}

	record, err := c.ScheduledPostRepo.GetByPostID(ctx, postID)
	if err != nil {
		if errors.Is(err, scheduledpost.ErrNotFound) {
			_, err := c.Telegram.SendMessage(chatID, "This post has no schedule record yet.")
			return err
		}
		_, _ = c.Telegram.SendMessage(chatID, "Failed to look up the schedule record.")
		return fmt.Errorf("get schedule record for post %s: %w", postID, err)
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf(
		"Post %s is %s for %s.",
		postID, record.Status, record.ScheduledDate.Format("Mon 01/02/2006 3:04 PM")))
	return err
}
