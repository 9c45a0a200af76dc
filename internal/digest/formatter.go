package digest

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf16"

	"NewsDigestBot/internal/news"
)

const (
	// CuratedHeader заголовок ежедневной подборки новостей об ИИ
	CuratedHeader = "🤖 Главное об ИИ за сутки"
	// Separator отделяет пересказ от списка ссылок
	Separator = "━━━━━━━━━━━━━━━"
	// MaxMessageLength лимит Telegram на длину текста сообщения
	MaxMessageLength = 4096

	dateLayout = "02.01.2006"
	ellipsis   = "…"
)

// Header возвращает заголовок сообщения для режима
func Header(topic string, aiFilter bool) string {
	if aiFilter {
		return CuratedHeader
	}
	return fmt.Sprintf("📰 Новости по теме «%s»", topic)
}

// Formatter собирает итоговый текст сообщения. Даты выводятся в зоне loc.
type Formatter struct {
	loc *time.Location
}

// NewFormatter создает Formatter; nil означает UTC
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

// Format собирает сообщение: заголовок, пересказ, разделитель и по строке на статью
// в исходном порядке. Если текст не влезает в лимит Telegram, сначала сокращается
// пересказ; если не влезает даже список ссылок, отбрасываются последние строки.
func (f *Formatter) Format(topic string, aiFilter bool, summary string, articles []news.Article) string {
	header := Header(topic, aiFilter)
	lines := f.articleLines(articles)

	// header + "\n\n" + summary + "\n\n" + Separator + "\n" + index
	overhead := textLength(header) + 2 + 2 + textLength(Separator) + 1
	for len(lines) > 1 && overhead+textLength(strings.Join(lines, "\n"))+textLength(ellipsis) > MaxMessageLength {
		lines = lines[:len(lines)-1]
	}
	index := strings.Join(lines, "\n")
	summary = truncate(summary, MaxMessageLength-overhead-textLength(index))

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	sb.WriteString(summary)
	sb.WriteString("\n\n")
	sb.WriteString(Separator)
	sb.WriteString("\n")
	sb.WriteString(index)
	return sb.String()
}

func (f *Formatter) articleLines(articles []news.Article) []string {
	lines := make([]string, 0, len(articles))
	for i, article := range articles {
		date := "без даты"
		if !article.PublishedAt.IsZero() {
			date = article.PublishedAt.In(f.loc).Format(dateLayout)
		}
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, date, article.URL))
	}
	return lines
}

// textLength длина в UTF-16 единицах, как считает Telegram
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// truncate обрезает текст до limit UTF-16 единиц, добавляя многоточие
func truncate(s string, limit int) string {
	if textLength(s) <= limit {
		return s
	}
	if limit <= 0 {
		return ""
	}

	budget := limit - textLength(ellipsis)
	var sb strings.Builder
	used := 0
	for _, r := range s {
		n := utf16.RuneLen(r)
		if used+n > budget {
			break
		}
		sb.WriteRune(r)
		used += n
	}
	return strings.TrimRight(sb.String(), " \n") + ellipsis
}
