package digest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"NewsDigestBot/internal/ai"
	"NewsDigestBot/internal/fallback"
	"NewsDigestBot/internal/news"

	"github.com/go-playground/assert/v2"
)

type fakeFetcher struct {
	result fallback.Result[[]news.Article]
	calls  int
}

func (f *fakeFetcher) Fetch(ctx context.Context, topic string, pageSize int, aiFilter bool) fallback.Result[[]news.Article] {
	f.calls++
	return f.result
}

type fakeSummarizer struct {
	result fallback.Result[string]
	calls  [][]news.Article
}

func (f *fakeSummarizer) Summarize(ctx context.Context, articles []news.Article) fallback.Result[string] {
	f.calls = append(f.calls, articles)
	return f.result
}

type recordingTarget struct {
	sent []string
	err  error
}

func (r *recordingTarget) Deliver(ctx context.Context, text string) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, text)
	return nil
}

func (r *recordingTarget) String() string { return "recording" }

var composerArticles = []news.Article{
	{Title: "Alpha", URL: "https://example.com/a", PublishedAt: time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC)},
	{Title: "Beta", URL: "https://example.com/b", PublishedAt: time.Date(2026, 10, 16, 5, 0, 0, 0, time.UTC)},
}

func TestComposeEmptySendsNotFoundOnly(t *testing.T) {
	tests := []struct {
		name     string
		aiFilter bool
		result   fallback.Result[[]news.Article]
		want     string
	}{
		{"curated no news", true, fallback.Ok([]news.Article{}), CuratedNotFound},
		{"adhoc no news", false, fallback.Ok([]news.Article{}), AdHocNotFound},
		{"adhoc fetch failed", false, fallback.Degrade([]news.Article{}, errors.New("boom")), AdHocNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{result: tt.result}
			summarizer := &fakeSummarizer{}
			target := &recordingTarget{}
			c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

			err := c.ComposeAndSend(context.Background(), target, "quantum computing", tt.aiFilter)

			assert.Equal(t, nil, err)
			assert.Equal(t, 0, len(summarizer.calls))
			assert.Equal(t, []string{tt.want}, target.sent)
		})
	}
}

func TestComposeSummarizesOnce(t *testing.T) {
	fetcher := &fakeFetcher{result: fallback.Ok(composerArticles)}
	summarizer := &fakeSummarizer{result: fallback.Ok("• итог")}
	target := &recordingTarget{}
	c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

	err := c.ComposeAndSend(context.Background(), target, "AI", true)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(summarizer.calls))
	assert.Equal(t, composerArticles, summarizer.calls[0])
	assert.Equal(t, 1, len(target.sent))
	assert.Equal(t, NewFormatter(nil).Format("AI", true, "• итог", composerArticles), target.sent[0])
}

func TestComposeDeliversFallbackSummary(t *testing.T) {
	fetcher := &fakeFetcher{result: fallback.Ok(composerArticles)}
	summarizer := &fakeSummarizer{result: fallback.Degrade(ai.FallbackSummary, errors.New("llm down"))}
	target := &recordingTarget{}
	c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

	err := c.ComposeAndSend(context.Background(), target, "AI", true)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(target.sent))
	assert.Equal(t, true, strings.Contains(target.sent[0], ai.FallbackSummary))
	assert.Equal(t, true, strings.Contains(target.sent[0], "https://example.com/a"))
	assert.Equal(t, true, strings.Contains(target.sent[0], "https://example.com/b"))
}

func TestComposePropagatesDeliveryError(t *testing.T) {
	sendErr := errors.New("chat not found")
	fetcher := &fakeFetcher{result: fallback.Ok(composerArticles)}
	summarizer := &fakeSummarizer{result: fallback.Ok("• итог")}
	c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

	err := c.ComposeAndSend(context.Background(), &recordingTarget{err: sendErr}, "AI", true)

	assert.Equal(t, true, errors.Is(err, sendErr))
}

func TestComposeWithRealSummarizerFailure(t *testing.T) {
	fetcher := &fakeFetcher{result: fallback.Ok(composerArticles)}
	summarizer := ai.NewSummarizer(failingCompleter{}, 100)
	var out bytes.Buffer
	c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

	err := c.ComposeAndSend(context.Background(), WriterTarget{W: &out}, "AI", true)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasPrefix(out.String(), CuratedHeader))
	assert.Equal(t, true, strings.Contains(out.String(), ai.FallbackSummary))
}

type failingCompleter struct{}

func (failingCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", errors.New("network unreachable")
}

func TestComposeCancelledRunSendsNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{result: fallback.Degrade([]news.Article{}, context.Canceled)}
	summarizer := &fakeSummarizer{}
	target := &recordingTarget{}
	c := NewComposer(fetcher, summarizer, NewFormatter(nil), 5)

	err := c.ComposeAndSend(ctx, target, "AI", true)

	assert.Equal(t, true, errors.Is(err, context.Canceled))
	assert.Equal(t, 0, len(target.sent))
	assert.Equal(t, 0, len(summarizer.calls))
}
