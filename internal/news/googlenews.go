package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

const googleNewsSearchURL = "https://news.google.com/rss/search"

// GoogleNewsClient ищет статьи через RSS-поиск Google News.
// Ключ не нужен, поэтому подходит как запасной источник.
type GoogleNewsClient struct {
	parser *gofeed.Parser
}

// NewGoogleNewsClient создает клиента RSS-поиска
func NewGoogleNewsClient() *GoogleNewsClient {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	parser.Client = &http.Client{Timeout: 10 * time.Second}
	return &GoogleNewsClient{parser: parser}
}

func (c *GoogleNewsClient) Name() string {
	return "Google News"
}

// searchURL собирает адрес поиска; язык задается через hl/gl/ceid
func searchURL(sr SearchRequest) string {
	params := url.Values{}
	params.Set("q", sr.Query)
	if sr.Language != "" {
		params.Set("hl", sr.Language)
		params.Set("gl", "US")
		params.Set("ceid", "US:"+sr.Language)
	}
	return googleNewsSearchURL + "?" + params.Encode()
}

func (c *GoogleNewsClient) Search(ctx context.Context, sr SearchRequest) ([]Article, error) {
	feed, err := c.parser.ParseURLWithContext(searchURL(sr), ctx)
	if err != nil {
		return nil, fmt.Errorf("google news rss: %w", err)
	}

	articles := itemsToArticles(feed.Items)

	if sr.SortBy == SortPublishedAt {
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].PublishedAt.After(articles[j].PublishedAt)
		})
	}
	if sr.PageSize > 0 && len(articles) > sr.PageSize {
		articles = articles[:sr.PageSize]
	}

	return articles, nil
}

func itemsToArticles(items []*gofeed.Item) []Article {
	articles := make([]Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		}

		var source string
		if item.Author != nil {
			source = item.Author.Name
		}

		articles = append(articles, Article{
			Title:       strings.TrimSpace(item.Title),
			Description: cleanText(item.Description),
			URL:         item.Link,
			PublishedAt: publishedAt,
			Source:      source,
		})
	}
	return articles
}

// cleanText очищает текст от HTML тегов, сущностей (&nbsp;, &amp;) и лишних пробелов
func cleanText(text string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return strings.Join(strings.Fields(text), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}
