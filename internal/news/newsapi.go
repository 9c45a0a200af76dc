package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const newsAPIEverythingURL = "https://newsapi.org/v2/everything"

// removedPlaceholder NewsAPI подставляет вместо удаленных статей
const removedPlaceholder = "[Removed]"

// NewsAPIClient ищет статьи через NewsAPI /v2/everything
type NewsAPIClient struct {
	apiKey     string
	httpClient *http.Client
}

// NewNewsAPIClient создает клиента NewsAPI
func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

func (c *NewsAPIClient) Search(ctx context.Context, sr SearchRequest) ([]Article, error) {
	params := url.Values{}
	params.Set("q", sr.Query)
	if sr.SortBy != "" {
		params.Set("sortBy", sr.SortBy)
	}
	if sr.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(sr.PageSize))
	}
	if sr.Language != "" {
		params.Set("language", sr.Language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIEverythingURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read: %w", err)
	}

	var raw newsAPIResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("newsapi decode (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: status %d, code %q: %s", resp.StatusCode, raw.Code, raw.Message)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		if item.Title == "" || item.URL == "" || item.Title == removedPlaceholder {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			Title:       strings.TrimSpace(item.Title),
			Description: strings.TrimSpace(item.Description),
			URL:         item.URL,
			PublishedAt: publishedAt,
			Source:      item.Source.Name,
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string          `json:"status"`
	Code     string          `json:"code"`
	Message  string          `json:"message"`
	Articles []newsAPIResult `json:"articles"`
}

type newsAPIResult struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}
