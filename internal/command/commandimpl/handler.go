package commandimpl

import (
	"context"
	"errors"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpMessage = `👋 Welcome to the LinkedIn Autopilot bot!

Here are the available commands:

PLANNING:
/import <path_to_csv> - Load a content plan from a CSV file.
/status - Show post and schedule counts by status.
/assets - List stored attachments.
/plan [count] - Preview publish dates for your draft posts.
/when <post_id> - Show the schedule record for one post.
/schedule [key=value ...] - Assign publish dates to all draft posts.
  Keys: start=YYYY-MM-DD time=HH:MM cadence=daily|custom interval=N perday=1..3 skipweekends=true|false

AUTOMATION:
/run - Push every due post through the LinkedIn composer now.

Type /help at any time to see this guide.`

func (c *CommandImpl) HandleCommand(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := c.Telegram.GetUpdatesChan(u)
	c.Logger.Info("Command handler started, listening for updates.")

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Command handler shutting down.")
			c.Telegram.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				c.Logger.Warn("Telegram updates channel closed unexpectedly. Restarting handler...")
				return errors.New("telegram updates channel closed")
			}

			go func(u tgbotapi.Update) {
				defer func() {
					if r := recover(); r != nil {
						c.Logger.Error("Panic recovered while processing an update", "panic", r, "stack", string(debug.Stack()))
					}
				}()

				if u.Message == nil || !u.Message.IsCommand() {
					return
				}

				// Single-operator bot: anyone else is ignored outright.
				if u.Message.From == nil || u.Message.From.ID != c.Config.Telegram.User {
					c.Logger.Warn("Ignoring command from unknown user",
						"from", u.Message.From.ID, "command", u.Message.Command())
					return
				}

				if !c.Limiter.Allow(u.Message.From.ID) {
					_, _ = c.Telegram.SendMessage(u.Message.Chat.ID,
						"Too many commands, please slow down.")
					return
				}

				c.Logger.Info("Command received", "command", u.Message.Command(), "args", u.Message.CommandArguments())

				if err := c.processCommand(ctx, u); err != nil {
					c.Logger.Error("Error processing command",
						"command", u.Message.Command(),
						"error", err)
				}
			}(update)
		}
	}
}

func (c *CommandImpl) processCommand(ctx context.Context, update tgbotapi.Update) error {
	command := update.Message.Command()
	chatID := update.Message.Chat.ID

	switch command {
	case "start", "help":
		_, err := c.Telegram.SendMessage(chatID, helpMessage)
		return err
	case "import":
		return c.handleImport(ctx, update)
	case "status":
		return c.handleStatus(ctx, chatID)
	case "assets":
		return c.handleAssets(ctx, chatID)
	case "plan":
		return c.handlePlan(ctx, update)
	case "when":
		return c.handleWhen(ctx, update)
	case "schedule":
		return c.handleSchedule(ctx, update)
	case "run":
		return c.handleRun(ctx, chatID)
	default:
		_, err := c.Telegram.SendMessage(chatID, "Unknown command. Type /help to see the list of available commands.")
		return err
	}
}
