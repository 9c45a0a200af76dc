package ai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIClient struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAIClient(apiKey, model string, opts ...option.RequestOption) *OpenAIClient {
	client := openai.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	chatModel := openai.ChatModelGPT4oMini
	if model != "" {
		chatModel = openai.ChatModel(model)
	}

	return &OpenAIClient{
		client: &client,
		model:  chatModel,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	return resp.Choices[0].Message.Content, nil
}
