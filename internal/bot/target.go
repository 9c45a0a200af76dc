package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChannelTarget рассылка сообщения в канал
type ChannelTarget struct {
	api    telegramAPI
	chatID int64
	name   string
}

func (t ChannelTarget) Deliver(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("ошибка отправки в канал %s: %w", t.name, err)
	}
	return nil
}

func (t ChannelTarget) String() string {
	return "канал " + t.name
}

// ReplyTarget ответ на входящее сообщение
type ReplyTarget struct {
	api     telegramAPI
	message *tgbotapi.Message
}

func (t ReplyTarget) Deliver(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(t.message.Chat.ID, text)
	msg.ReplyToMessageID = t.message.MessageID
	msg.DisableWebPagePreview = true

	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("ошибка ответа на сообщение %d: %w", t.message.MessageID, err)
	}
	return nil
}

func (t ReplyTarget) String() string {
	return fmt.Sprintf("ответ на сообщение %d в чате %d", t.message.MessageID, t.message.Chat.ID)
}
