package telegram

import (
	"time"

	"gopkg.in/telebot.v3"
)

// Receipt describes a message the bot API accepted for delivery.
type Receipt struct {
	MessageID int
	ChatID    int64
	SentAt    time.Time
}

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) (*Receipt, error)
}
