// internal/infra/telegram/client.go
package telegram

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"gopkg.in/telebot.v3"
)

// Settings holds what is needed to construct the bot client.
type Settings struct {
	Token   string
	APIURL  string        // empty means the public Bot API
	Timeout time.Duration // per request
	Offline bool          // skip the getMe call on construction
}

// NewBot builds a send-only telebot instance. No poller is configured since
// the bot never handles inbound updates.
func NewBot(s Settings) (*telebot.Bot, error) {
	pref := telebot.Settings{
		Token:   s.Token,
		URL:     s.APIURL,
		Client:  &http.Client{Timeout: s.Timeout},
		Offline: s.Offline,
	}
	b, err := telebot.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified chat.
func (tba *TelebotAdapter) SendMessage(chatID int64, text string, options *telebot.SendOptions) (*domainTelegram.Receipt, error) {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	msg, err := tba.bot.Send(telebot.ChatID(chatID), text, options)
	if err != nil {
		return nil, redactURL(err)
	}

	receipt := &domainTelegram.Receipt{MessageID: msg.ID, ChatID: chatID, SentAt: msg.Time()}
	if msg.Chat != nil {
		receipt.ChatID = msg.Chat.ID
	}
	return receipt, nil
}

// redactURL drops the request URL from transport errors. Bot API URLs embed
// the token, and these errors end up in the log and in the chat.
func redactURL(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("telegram request failed: %s: %w", uerr.Op, uerr.Err)
}
