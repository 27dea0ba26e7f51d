// internal/app/notifier.go
package app

import (
	"context"
	"errors"
	"strings"

	domainTelegram "homework_status_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// ErrEmptyMessage is returned when there is nothing to send.
var ErrEmptyMessage = errors.New("notification text is empty")

// Notifier delivers plain text messages to the single configured chat.
type Notifier struct {
	client domainTelegram.Client
	chatID int64
	logger *logrus.Entry
}

func NewNotifier(client domainTelegram.Client, chatID int64, logger *logrus.Entry) *Notifier {
	return &Notifier{
		client: client,
		chatID: chatID,
		logger: logger.WithField("chat_id", chatID),
	}
}

// Notify logs the message and sends it. Delivery errors are returned as is;
// the caller decides whether to retry.
func (n *Notifier) Notify(ctx context.Context, message string) (*domainTelegram.Receipt, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.logger.Infof("Sending message: %s", message)
	receipt, err := n.client.SendMessage(n.chatID, message, nil)
	if err != nil {
		n.logger.WithError(err).Error("Failed to send message")
		return nil, err
	}
	n.logger.WithField("message_id", receipt.MessageID).Info("Message delivered")
	return receipt, nil
}
