package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"NewsDigestBot/internal/digest"

	"github.com/gin-gonic/gin"
)

// Server HTTP-вход: проверка живости и ручной запуск подборки в канал
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	resolver   digest.ChannelResolver
	sender     digest.Sender
	topic      string
}

// New создает сервер; topic используется, если в запросе тема не указана
func New(addr string, resolver digest.ChannelResolver, sender digest.Sender, topic string) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine:   engine,
		resolver: resolver,
		sender:   sender,
		topic:    topic,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.POST("/digest", s.handleDigest)
}

// Handler возвращает http.Handler сервера
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start слушает адрес до отмены ctx
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[http] 🌐 Сервер слушает %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleDigest запускает цепочку синхронно: POST /digest?topic=...&adhoc=true
func (s *Server) handleDigest(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		topic = s.topic
	}
	adhoc, _ := strconv.ParseBool(c.Query("adhoc"))

	target, err := s.resolver.ChannelTarget(c.Request.Context())
	if err != nil {
		log.Printf("[http] ❌ Канал не найден: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if err := s.sender.ComposeAndSend(c.Request.Context(), target, topic, !adhoc); err != nil {
		log.Printf("[http] ❌ Ошибка отправки подборки: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "sent", "topic": topic, "curated": !adhoc})
}
