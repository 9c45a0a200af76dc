package digest

import (
	"context"
	"fmt"
	"log"

	"NewsDigestBot/internal/fallback"
	"NewsDigestBot/internal/news"

	"github.com/google/uuid"
)

const (
	// CuratedNotFound ответ, если для ежедневной подборки ничего не нашлось
	CuratedNotFound = "📭 Свежих новостей об ИИ сегодня не нашлось."
	// AdHocNotFound ответ, если по теме из сообщения ничего не нашлось
	AdHocNotFound = "📭 Новостей по этой теме не найдено."
)

// Fetcher ищет статьи по теме
type Fetcher interface {
	Fetch(ctx context.Context, topic string, pageSize int, aiFilter bool) fallback.Result[[]news.Article]
}

// Summarizer пересказывает статьи
type Summarizer interface {
	Summarize(ctx context.Context, articles []news.Article) fallback.Result[string]
}

// Composer выполняет цепочку: поиск -> пересказ -> форматирование -> доставка
type Composer struct {
	fetcher    Fetcher
	summarizer Summarizer
	formatter  *Formatter
	pageSize   int
}

// NewComposer создает новый Composer
func NewComposer(fetcher Fetcher, summarizer Summarizer, formatter *Formatter, pageSize int) *Composer {
	return &Composer{
		fetcher:    fetcher,
		summarizer: summarizer,
		formatter:  formatter,
		pageSize:   pageSize,
	}
}

// NotFoundNotice возвращает фиксированное уведомление об отсутствии новостей для режима
func NotFoundNotice(aiFilter bool) string {
	if aiFilter {
		return CuratedNotFound
	}
	return AdHocNotFound
}

// ComposeAndSend собирает сообщение по теме и отправляет его в target.
// Ошибки поиска и пересказа уже деградированы внутри, ошибка доставки возвращается как есть.
func (c *Composer) ComposeAndSend(ctx context.Context, target Target, topic string, aiFilter bool) error {
	runID := uuid.NewString()[:8]
	log.Printf("[digest] 🔄 [%s] Запуск: тема %q, курируемый режим: %t, доставка: %s", runID, topic, aiFilter, target)

	fetched := c.fetcher.Fetch(ctx, topic, c.pageSize, aiFilter)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("запуск %s прерван: %w", runID, err)
	}
	if len(fetched.Value) == 0 {
		log.Printf("[digest] 📭 [%s] Новостей не найдено (деградация: %t)", runID, fetched.Degraded())
		if err := target.Deliver(ctx, NotFoundNotice(aiFilter)); err != nil {
			return fmt.Errorf("доставка уведомления в %s: %w", target, err)
		}
		return nil
	}

	summary := c.summarizer.Summarize(ctx, fetched.Value)
	if summary.Degraded() {
		log.Printf("[digest] ⚠️ [%s] Используем запасной текст пересказа: %v", runID, summary.Err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("запуск %s прерван: %w", runID, err)
	}

	text := c.formatter.Format(topic, aiFilter, summary.Value, fetched.Value)

	if err := target.Deliver(ctx, text); err != nil {
		return fmt.Errorf("доставка сообщения в %s: %w", target, err)
	}

	log.Printf("[digest] ✅ [%s] Отправлено %d ссылок в %s", runID, len(fetched.Value), target)
	return nil
}

// Sender запускает цепочку для цели доставки; реализуется Composer
type Sender interface {
	ComposeAndSend(ctx context.Context, target Target, topic string, aiFilter bool) error
}

// ChannelResolver находит настроенный канал и возвращает цель рассылки в него
type ChannelResolver interface {
	ChannelTarget(ctx context.Context) (Target, error)
}
