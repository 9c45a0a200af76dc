package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"NewsDigestBot/internal/ai"
	"NewsDigestBot/internal/bot"
	"NewsDigestBot/internal/config"
	"NewsDigestBot/internal/digest"
	"NewsDigestBot/internal/news"
	"NewsDigestBot/internal/scheduler"
	"NewsDigestBot/internal/server"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "newsbot",
		Short:        "Telegram бот: ежедневная подборка новостей с пересказом от LLM",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}

	root.AddCommand(newRunCmd(), newOnceCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Запустить бота, расписание и (если задан HTTP_ADDR) HTTP сервер",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot()
		},
	}
}

func newOnceCmd() *cobra.Command {
	var topic string
	var adhoc, dryRun bool

	cmd := &cobra.Command{
		Use:   "once",
		Short: "Один раз собрать подборку и отправить в канал",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), topic, adhoc, dryRun)
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "тема (по умолчанию DAILY_TOPIC)")
	cmd.Flags().BoolVar(&adhoc, "adhoc", false, "искать тему как есть, без фильтра по ИИ")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "напечатать сообщение вместо отправки")
	return cmd
}

// loadConfig загружает конфигурацию, настраивает логгер и выводит предупреждения
func loadConfig() (*config.Config, *os.File, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logFile := setupLogger(cfg.LogFile)
	log.Printf("Логгер успешно запущен!")

	warnings := cfg.Validate()
	for _, w := range warnings {
		log.Printf("⚠️ %s", w)
	}
	if cfg.StrictConfig && len(warnings) > 0 {
		logFile.Close()
		return nil, nil, fmt.Errorf("конфигурация неполная: %s", strings.Join(warnings, "; "))
	}

	return cfg, logFile, nil
}

// buildComposer собирает цепочку поиск -> пересказ -> форматирование
func buildComposer(cfg *config.Config) (*digest.Composer, error) {
	var searcher news.Searcher
	switch cfg.NewsProvider {
	case "newsapi":
		searcher = news.NewNewsAPIClient(cfg.NewsAPIKey)
	case "rss":
		searcher = news.NewGoogleNewsClient()
	default:
		return nil, fmt.Errorf("неизвестный источник новостей: %q (доступны: newsapi, rss)", cfg.NewsProvider)
	}

	llm, err := ai.New(ai.Options{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		FolderID: cfg.YandexFolderID,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🔧 Новости: %s, LLM: %s", searcher.Name(), cfg.LLMProvider)

	return digest.NewComposer(
		news.NewFetcher(searcher),
		ai.NewSummarizer(llm, cfg.SummaryMaxTokens),
		digest.NewFormatter(cfg.Location),
		cfg.NewsPageSize,
	), nil
}

func runBot() error {
	cfg, logFile, err := loadConfig()
	if err != nil {
		return err
	}
	defer logFile.Close()

	composer, err := buildComposer(cfg)
	if err != nil {
		return err
	}

	telegramBot, err := bot.New(cfg.BotToken, cfg.Channel, composer)
	if err != nil {
		log.Printf("❌ Ошибка создания бота: %v", err)
		return err
	}

	daily, err := scheduler.New(cfg.ScheduleCron, cfg.Location, telegramBot, composer, cfg.DailyTopic)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		telegramBot.Start(ctx)
	}()
	go func() {
		defer wg.Done()
		daily.Start(ctx)
	}()

	if cfg.HTTPAddr != "" {
		srv := server.New(cfg.HTTPAddr, telegramBot, composer, cfg.DailyTopic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Start(ctx); err != nil {
				log.Printf("❌ %v", err)
			}
		}()
	}

	log.Printf("🎉 Система полностью готова к работе! Ежедневная тема: %q, расписание: %q (%s)",
		cfg.DailyTopic, cfg.ScheduleCron, cfg.ScheduleTZ)

	wg.Wait()
	log.Printf("👋 Завершение работы")
	return nil
}

func runOnce(ctx context.Context, topic string, adhoc, dryRun bool) error {
	cfg, logFile, err := loadConfig()
	if err != nil {
		return err
	}
	defer logFile.Close()

	if topic == "" {
		topic = cfg.DailyTopic
	}

	composer, err := buildComposer(cfg)
	if err != nil {
		return err
	}

	var target digest.Target = digest.WriterTarget{W: os.Stdout}
	if !dryRun {
		telegramBot, err := bot.New(cfg.BotToken, cfg.Channel, composer)
		if err != nil {
			return err
		}
		target, err = telegramBot.ChannelTarget(ctx)
		if err != nil {
			return err
		}
	}

	return composer.ComposeAndSend(ctx, target, topic, !adhoc)
}
