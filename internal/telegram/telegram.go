package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

//go:generate go run go.uber.org/mock/mockgen -source=telegram.go -destination=mocks/mock.go
type Client interface {
	GetUpdatesChan(u tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()

	SendMessage(chatID int64, text string) (int, error)
	EditMessageText(chatID int64, messageID int, newText string) error

	// SendMessageToUser delivers to the configured owner chat; delivery
	// failures are logged, not returned.
	SendMessageToUser(msg string)
}
