package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/mcqdrill/pkg/models"
)

// sender is the part of the bot API used for reminders
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends reminders to a chat through a Telegram bot
type Telegram struct {
	api    sender
	chatID int64
}

// NewTelegram connects to the bot API with token
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// Notify sends the reminder message
func (t *Telegram) Notify(ctx context.Context, summary models.DueSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatReminder(summary))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}
