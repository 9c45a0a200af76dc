package news

import (
	"context"
	"fmt"
	"log"

	"NewsDigestBot/internal/fallback"
)

// curatedQuery дополняет тему фильтром по ИИ для ежедневной подборки
const curatedQuery = `%s AND (AI OR "artificial intelligence" OR GenerativeAI)`

// Fetcher строит запрос по теме и режиму и обращается к поиску новостей
type Fetcher struct {
	searcher Searcher
}

// NewFetcher создает новый Fetcher
func NewFetcher(searcher Searcher) *Fetcher {
	return &Fetcher{searcher: searcher}
}

// BuildRequest формирует запрос к поиску. В курируемом режиме тема
// дополняется фильтром по ИИ и поиск ограничивается английским языком.
func BuildRequest(topic string, pageSize int, aiFilter bool) SearchRequest {
	req := SearchRequest{
		Query:    topic,
		SortBy:   SortPublishedAt,
		PageSize: pageSize,
	}
	if aiFilter {
		req.Query = fmt.Sprintf(curatedQuery, topic)
		req.Language = "en"
	}
	return req
}

// Fetch ищет свежие статьи по теме. Ошибка поиска не возвращается наверх:
// результат деградирует до пустого списка.
func (f *Fetcher) Fetch(ctx context.Context, topic string, pageSize int, aiFilter bool) fallback.Result[[]Article] {
	req := BuildRequest(topic, pageSize, aiFilter)

	articles, err := f.searcher.Search(ctx, req)
	if err != nil {
		log.Printf("[news] ⚠️ Ошибка поиска новостей в %s (%q): %v", f.searcher.Name(), req.Query, err)
		return fallback.Degrade([]Article{}, fmt.Errorf("поиск %s: %w", f.searcher.Name(), err))
	}

	if len(articles) > pageSize {
		articles = articles[:pageSize]
	}

	log.Printf("[news] ✅ Получено %d новостей из %s по запросу %q", len(articles), f.searcher.Name(), req.Query)
	return fallback.Ok(articles)
}
