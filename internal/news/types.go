package news

import (
	"context"
	"time"
)

// Article представляет одну новостную статью из поиска
type Article struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
}

// SortPublishedAt сортировка по дате публикации (сначала свежие)
const SortPublishedAt = "publishedAt"

// SearchRequest описывает запрос к новостному поиску
type SearchRequest struct {
	Query    string
	SortBy   string
	PageSize int
	Language string // пустая строка: без ограничения языка
}

// Searcher представляет внешний сервис поиска новостей
type Searcher interface {
	Search(ctx context.Context, req SearchRequest) ([]Article, error)
	Name() string
}
