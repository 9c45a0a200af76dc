package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const yandexCompletionsURL = "https://llm.api.cloud.yandex.net/v1/chat/completions"

// YandexGPTClient клиент OpenAI-совместимого API YandexGPT
type YandexGPTClient struct {
	apiKey     string
	folderID   string
	modelURI   string
	baseURL    string
	httpClient *http.Client
}

// chatCompletionRequest структура запроса для chat/completions
type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// message одно сообщение в диалоге
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatCompletionResponse структура ответа от chat/completions
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		TotalTokens int `json:"total_tokens"`
	} `json:"usage"`
}

// NewYandexGPTClient создает клиента YandexGPT. По умолчанию используется yandexgpt-lite/rc.
func NewYandexGPTClient(apiKey, folderID, model string) *YandexGPTClient {
	if model == "" {
		model = "yandexgpt-lite/rc"
	}

	return &YandexGPTClient{
		apiKey:   apiKey,
		folderID: folderID,
		modelURI: fmt.Sprintf("gpt://%s/%s", folderID, model),
		baseURL:  yandexCompletionsURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Complete отправляет промпт в YandexGPT и возвращает ответ
func (c *YandexGPTClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	request := chatCompletionRequest{
		Model: c.modelURI,
		Messages: []message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   maxTokens,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("ошибка маршалинга запроса: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Api-Key %s", c.apiKey))
	req.Header.Set("OpenAI-Project", c.folderID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ошибка выполнения запроса: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ошибка API: статус %d: %s", resp.StatusCode, string(body))
	}

	var chatResponse chatCompletionResponse
	if err := json.Unmarshal(body, &chatResponse); err != nil {
		return "", fmt.Errorf("ошибка парсинга ответа: %w", err)
	}

	if len(chatResponse.Choices) == 0 {
		return "", fmt.Errorf("пустой ответ от YandexGPT")
	}

	log.Printf("[ai] YandexGPT: использовано токенов: %d", chatResponse.Usage.TotalTokens)
	return chatResponse.Choices[0].Message.Content, nil
}
