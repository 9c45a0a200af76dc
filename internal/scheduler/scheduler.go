package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"NewsDigestBot/internal/digest"

	"github.com/robfig/cron/v3"
)

// Scheduler раз в сутки (по cron-выражению в заданной зоне) отправляет
// курируемую подборку в канал
type Scheduler struct {
	cron     *cron.Cron
	entry    cron.EntryID
	resolver digest.ChannelResolver
	sender   digest.Sender
	topic    string
	ctx      context.Context
}

// New проверяет выражение и регистрирует ежедневный запуск
func New(spec string, loc *time.Location, resolver digest.ChannelResolver, sender digest.Sender, topic string) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cron.PrintfLogger(log.Default())),
		),
		resolver: resolver,
		sender:   sender,
		topic:    topic,
		ctx:      context.Background(),
	}

	id, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.ctx) })
	if err != nil {
		return nil, fmt.Errorf("неверное расписание %q: %w", spec, err)
	}
	s.entry = id

	return s, nil
}

// Start запускает расписание и блокируется до отмены ctx
func (s *Scheduler) Start(ctx context.Context) {
	// плановый запуск, начатый до остановки, доводится до конца
	s.ctx = context.WithoutCancel(ctx)
	s.cron.Start()
	log.Printf("[scheduler] ⏰ Расписание запущено, следующий запуск: %s", s.Next().Format(time.RFC3339))

	<-ctx.Done()
	<-s.cron.Stop().Done()
	log.Printf("[scheduler] 🛑 Расписание остановлено")
}

// Next время следующего запуска
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entry).Next
}

// RunOnce выполняет один плановый запуск. Если канал не найден, запуск
// прерывается; следующий запуск по расписанию это не затрагивает.
func (s *Scheduler) RunOnce(ctx context.Context) {
	target, err := s.resolver.ChannelTarget(ctx)
	if err != nil {
		log.Printf("[scheduler] ❌ Плановый запуск прерван: %v", err)
		return
	}

	if err := s.sender.ComposeAndSend(ctx, target, s.topic, true); err != nil {
		log.Printf("[scheduler] ❌ Ошибка планового запуска: %v", err)
		return
	}

	log.Printf("[scheduler] ✅ Плановая подборка по теме %q отправлена", s.topic)
}
