package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"NewsDigestBot/internal/fallback"
	"NewsDigestBot/internal/news"
)

// FallbackSummary подставляется вместо пересказа, если модель недоступна
const FallbackSummary = "⚠️ Не удалось подготовить краткое содержание."

// DefaultMaxTokens ограничение длины ответа модели
const DefaultMaxTokens = 700

const systemPrompt = `Ты редактор новостного канала. Тебе дают список свежих новостей.

Правила:
- Отвечай только на русском языке, даже если новости на другом языке
- Не длиннее 1200 символов
- Оформи ответ маркированным списком: один пункт на одно событие или тему
- Без вступления и заключения, без ссылок
- Сохраняй факты: имена, компании, числа`

// Summarizer готовит краткий пересказ списка статей через языковую модель
type Summarizer struct {
	llm       Completer
	maxTokens int
}

// NewSummarizer создает новый Summarizer
func NewSummarizer(llm Completer, maxTokens int) *Summarizer {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Summarizer{llm: llm, maxTokens: maxTokens}
}

// BuildPrompt форматирует статьи для промпта: номер, заголовок и описание
func BuildPrompt(articles []news.Article) string {
	var sb strings.Builder
	sb.WriteString("Кратко перескажи эти новости:\n\n")
	for i, article := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s\n%s\n\n", i+1, article.Title, article.Description))
	}
	return sb.String()
}

// Summarize возвращает пересказ. Любая ошибка модели деградирует до FallbackSummary,
// чтобы список ссылок все равно был доставлен.
func (s *Summarizer) Summarize(ctx context.Context, articles []news.Article) fallback.Result[string] {
	text, err := s.llm.Complete(ctx, BuildPrompt(articles), s.maxTokens)
	if err != nil {
		log.Printf("[ai] ⚠️ Ошибка генерации пересказа: %v", err)
		return fallback.Degrade(FallbackSummary, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		log.Printf("[ai] ⚠️ Модель вернула пустой пересказ")
		return fallback.Degrade(FallbackSummary, fmt.Errorf("пустой ответ модели"))
	}

	log.Printf("[ai] ✅ Пересказ готов (%d статей, %d символов)", len(articles), len([]rune(text)))
	return fallback.Ok(text)
}
