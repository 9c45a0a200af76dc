package ai

import (
	"context"
	"fmt"
)

// Completer представляет языковую модель: текст промпта -> ответ
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Options настройки провайдера языковой модели
type Options struct {
	Provider string // openai, anthropic, yandex
	APIKey   string
	Model    string
	FolderID string // только для yandex
}

// New создает клиента выбранного провайдера
func New(opts Options) (Completer, error) {
	switch opts.Provider {
	case "", "openai":
		return NewOpenAIClient(opts.APIKey, opts.Model), nil
	case "anthropic":
		return NewAnthropicClient(opts.APIKey, opts.Model), nil
	case "yandex":
		return NewYandexGPTClient(opts.APIKey, opts.FolderID, opts.Model), nil
	default:
		return nil, fmt.Errorf("неизвестный провайдер LLM: %q (доступны: openai, anthropic, yandex)", opts.Provider)
	}
}
