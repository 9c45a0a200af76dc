package digest

import (
	"context"
	"fmt"
	"io"
)

// Target место доставки готового сообщения: рассылка в канал или ответ на сообщение.
// Реализации отключают предпросмотр ссылок.
type Target interface {
	Deliver(ctx context.Context, text string) error
	String() string
}

// WriterTarget печатает сообщение в w вместо отправки (режим --dry-run)
type WriterTarget struct {
	W io.Writer
}

func (t WriterTarget) Deliver(ctx context.Context, text string) error {
	_, err := fmt.Fprintln(t.W, text)
	return err
}

func (t WriterTarget) String() string {
	return "stdout"
}
