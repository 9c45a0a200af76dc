package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config содержит настройки процесса. Все значения берутся из окружения
// (и необязательного .env / YAML файла), состояние между перезапусками не хранится.
type Config struct {
	BotToken string
	Channel  string

	LLMProvider      string
	LLMAPIKey        string
	LLMModel         string
	YandexFolderID   string
	SummaryMaxTokens int

	NewsProvider string
	NewsAPIKey   string
	NewsPageSize int

	DailyTopic   string
	ScheduleCron string
	ScheduleTZ   string
	Location     *time.Location

	HTTPAddr     string
	LogFile      string
	StrictConfig bool
}

// MaxPageSize наибольший pageSize, который принимает NewsAPI
const MaxPageSize = 100

func defaults(v *viper.Viper) {
	v.SetDefault("llm_provider", "openai")
	v.SetDefault("summary_max_tokens", 700)
	v.SetDefault("news_provider", "newsapi")
	v.SetDefault("news_page_size", 5)
	v.SetDefault("daily_topic", "AI")
	v.SetDefault("schedule_cron", "0 9 * * *")
	v.SetDefault("schedule_tz", "Europe/Moscow")
	v.SetDefault("log_file", "logs.txt")
	v.SetDefault("strict_config", false)
}

// Load загружает .env файлы (если есть) и собирает конфигурацию.
// Без аргументов читается ./.env.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ошибка загрузки .env: %w", err)
		}
		log.Printf("[config] .env не найден, используем переменные окружения")
	}

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("ошибка чтения %s: %w", path, err)
		}
	}

	cfg := &Config{
		BotToken:         v.GetString("telegram_bot_token"),
		Channel:          strings.TrimSpace(v.GetString("telegram_channel")),
		LLMProvider:      strings.ToLower(v.GetString("llm_provider")),
		LLMAPIKey:        v.GetString("llm_api_key"),
		LLMModel:         v.GetString("llm_model"),
		YandexFolderID:   v.GetString("yandex_folder_id"),
		SummaryMaxTokens: v.GetInt("summary_max_tokens"),
		NewsProvider:     strings.ToLower(v.GetString("news_provider")),
		NewsAPIKey:       v.GetString("news_api_key"),
		NewsPageSize:     v.GetInt("news_page_size"),
		DailyTopic:       v.GetString("daily_topic"),
		ScheduleCron:     v.GetString("schedule_cron"),
		ScheduleTZ:       v.GetString("schedule_tz"),
		HTTPAddr:         v.GetString("http_addr"),
		LogFile:          v.GetString("log_file"),
		StrictConfig:     v.GetBool("strict_config"),
	}

	loc, err := time.LoadLocation(cfg.ScheduleTZ)
	if err != nil {
		return nil, fmt.Errorf("неверная временная зона %q: %w", cfg.ScheduleTZ, err)
	}
	cfg.Location = loc

	if cfg.NewsPageSize <= 0 || cfg.NewsPageSize > MaxPageSize {
		return nil, fmt.Errorf("NEWS_PAGE_SIZE должен быть от 1 до %d, получено %d", MaxPageSize, cfg.NewsPageSize)
	}

	return cfg, nil
}

// Validate возвращает предупреждения о недостающих учетных данных.
// Сами по себе они не фатальны: ошибка проявится при первом обращении к сервису.
func (c *Config) Validate() []string {
	var warnings []string

	if c.BotToken == "" {
		warnings = append(warnings, "TELEGRAM_BOT_TOKEN не установлен")
	}
	if c.Channel == "" {
		warnings = append(warnings, "TELEGRAM_CHANNEL не установлен")
	}
	if c.LLMAPIKey == "" {
		warnings = append(warnings, "LLM_API_KEY не установлен")
	}
	if c.LLMProvider == "yandex" && c.YandexFolderID == "" {
		warnings = append(warnings, "YANDEX_FOLDER_ID не установлен")
	}
	if c.NewsProvider == "newsapi" && c.NewsAPIKey == "" {
		warnings = append(warnings, "NEWS_API_KEY не установлен")
	}

	return warnings
}
