package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}

func newTestNewsAPIClient(srv *httptest.Server) *NewsAPIClient {
	client := &NewsAPIClient{
		apiKey:     "test-key",
		httpClient: srv.Client(),
	}
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}
	return client
}

func TestNewsAPISearch(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 3,
		"articles": []map[string]interface{}{
			{
				"source":      map[string]interface{}{"id": nil, "name": "The Verge"},
				"title":       "New model released",
				"description": "A lab shipped a new model.",
				"url":         "https://example.com/model",
				"publishedAt": "2026-10-15T08:30:00Z",
			},
			{
				"source":      map[string]interface{}{"name": "[Removed]"},
				"title":       "[Removed]",
				"description": "[Removed]",
				"url":         "https://removed.com",
				"publishedAt": "1970-01-01T00:00:00Z",
			},
			{
				"source":      map[string]interface{}{"name": "Wired"},
				"title":       "No description here",
				"description": nil,
				"url":         "https://example.com/nodesc",
				"publishedAt": "2026-10-15T07:00:00Z",
			},
		},
	}

	var gotQuery map[string][]string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get("X-Api-Key")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv)
	articles, err := client.Search(context.Background(), BuildRequest("AI", 5, true))

	assert.Equal(t, nil, err)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, `AI AND (AI OR "artificial intelligence" OR GenerativeAI)`, gotQuery["q"][0])
	assert.Equal(t, "en", gotQuery["language"][0])
	assert.Equal(t, "publishedAt", gotQuery["sortBy"][0])
	assert.Equal(t, "5", gotQuery["pageSize"][0])

	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "New model released", a.Title)
	assert.Equal(t, "A lab shipped a new model.", a.Description)
	assert.Equal(t, "https://example.com/model", a.URL)
	assert.Equal(t, "The Verge", a.Source)
	assert.Equal(t, time.Date(2026, 10, 15, 8, 30, 0, 0, time.UTC), a.PublishedAt)

	assert.Equal(t, "", articles[1].Description)
}

func TestNewsAPISearchNoLanguage(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"status":"ok","totalResults":0,"articles":[]}`))
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv)
	articles, err := client.Search(context.Background(), BuildRequest("quantum computing", 5, false))

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
	assert.Equal(t, "quantum computing", gotQuery["q"][0])
	_, hasLanguage := gotQuery["language"]
	assert.Equal(t, false, hasLanguage)
}

func TestNewsAPISearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid."}`))
	}))
	defer srv.Close()

	client := newTestNewsAPIClient(srv)
	articles, err := client.Search(context.Background(), BuildRequest("AI", 5, true))

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(articles))
}
