package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type AnthropicClient struct {
	client *anthropic.Client
	model  anthropic.Model
}

func NewAnthropicClient(apiKey, model string, opts ...option.RequestOption) *AnthropicClient {
	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	m := anthropic.ModelClaudeHaiku4_5
	if model != "" {
		m = anthropic.Model(model)
	}

	return &AnthropicClient{
		client: &client,
		model:  m,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: int64(maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		sb.WriteString(block.Text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no response from anthropic")
	}

	return sb.String(), nil
}
