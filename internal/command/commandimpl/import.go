package commandimpl

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (c *CommandImpl) handleImport(ctx context.Context, update tgbotapi.Update) error {
	chatID := update.Message.Chat.ID

	path := strings.TrimSpace(update.Message.CommandArguments())
	if path == "" {
		_, err := c.Telegram.SendMessage(chatID, "Please provide a file path: /import <path_to_csv>")
		return err
	}

	result, err := c.Importer.ImportCSV(ctx, path)
	if err != nil {
		_, _ = c.Telegram.SendMessage(chatID, "Import failed: "+err.Error())
		return err
	}

	_, err = c.Telegram.SendMessage(chatID, fmt.Sprintf(
		"📥 Import finished: %d imported, %d skipped, %d failed (of %d rows).",
		result.Imported, result.Skipped, result.Failed, result.Total))
	return err
}
