package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"NewsDigestBot/internal/digest"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegramAPI часть tgbotapi.BotAPI, которую использует бот
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetChat(config tgbotapi.ChatInfoConfig) (tgbotapi.Chat, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot представляет Telegram бота: принимает сообщения в настроенном канале
// и отвечает подборкой новостей по теме сообщения
type Bot struct {
	api     telegramAPI
	self    tgbotapi.User
	channel string
	sender  digest.Sender
	wg      sync.WaitGroup
}

// New создает нового бота
func New(token, channel string, sender digest.Sender) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания бота: %w", err)
	}

	return newBot(api, api.Self, channel, sender), nil
}

func newBot(api telegramAPI, self tgbotapi.User, channel string, sender digest.Sender) *Bot {
	return &Bot{
		api:     api,
		self:    self,
		channel: channel,
		sender:  sender,
	}
}

// Start читает обновления до отмены ctx и ждет завершения запущенных запросов
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	log.Printf("[bot] 🤖 Бот запущен: @%s, слушаем %s", b.self.UserName, b.channel)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.Wait()
			log.Printf("[bot] 🛑 Бот остановлен")
			return
		case update, ok := <-updates:
			if !ok {
				b.Wait()
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// Wait ждет завершения всех запущенных обработчиков сообщений
func (b *Bot) Wait() {
	b.wg.Wait()
}

// HandleUpdate запускает цепочку для входящего сообщения в отдельной горутине.
// Возвращает false, если сообщение пропущено.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) bool {
	msg := update.Message
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil || !b.accepts(msg) {
		return false
	}

	topic := ExtractTopic(msg)
	if topic == "" {
		log.Printf("[bot] Пустая тема в сообщении %d, пропускаем", msg.MessageID)
		return false
	}

	target := ReplyTarget{api: b.api, message: msg}
	// остановка бота не прерывает уже начатый запрос
	runCtx := context.WithoutCancel(ctx)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		if err := b.sender.ComposeAndSend(runCtx, target, topic, false); err != nil {
			log.Printf("[bot] ❌ Ошибка обработки сообщения %d (тема %q): %v", msg.MessageID, topic, err)
		}
	}()

	return true
}

// accepts пропускает только чужие сообщения из настроенного канала
func (b *Bot) accepts(msg *tgbotapi.Message) bool {
	if msg.From != nil && msg.From.ID == b.self.ID {
		return false
	}
	return b.isConfiguredChat(msg.Chat)
}

func (b *Bot) isConfiguredChat(chat *tgbotapi.Chat) bool {
	if chat == nil {
		return false
	}
	if id, ok := channelID(b.channel); ok {
		return chat.ID == id
	}
	return chat.UserName != "" && strings.EqualFold(chat.UserName, strings.TrimPrefix(b.channel, "@"))
}

// channelID разбирает числовой идентификатор канала (-100...)
func channelID(channel string) (int64, bool) {
	id, err := strconv.ParseInt(channel, 10, 64)
	return id, err == nil
}

// ChannelTarget находит настроенный канал через getChat и возвращает цель рассылки
func (b *Bot) ChannelTarget(ctx context.Context) (digest.Target, error) {
	if b.channel == "" {
		return nil, fmt.Errorf("канал не настроен")
	}

	cfg := tgbotapi.ChatConfig{}
	if id, ok := channelID(b.channel); ok {
		cfg.ChatID = id
	} else {
		cfg.SuperGroupUsername = "@" + strings.TrimPrefix(b.channel, "@")
	}

	chat, err := b.api.GetChat(tgbotapi.ChatInfoConfig{ChatConfig: cfg})
	if err != nil {
		return nil, fmt.Errorf("не удалось найти канал %s: %w", b.channel, err)
	}

	return ChannelTarget{api: b.api, chatID: chat.ID, name: b.channel}, nil
}
