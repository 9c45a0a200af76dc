package bot

import (
	"testing"

	"github.com/go-playground/assert/v2"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestStripMentions(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain topic", "quantum computing", "quantum computing"},
		{"leading bot mention", "@NewsDigestBot quantum computing", "quantum computing"},
		{"channel mention in middle", "news about @somechannel rust", "news about rust"},
		{"command", "/news   large language models", "large language models"},
		{"addressed command", "/news@NewsDigestBot chips", "chips"},
		{"only mentions", "@a @b /start", ""},
		{"email kept", "write to team@example.com", "write to team@example.com"},
		{"path kept", "/r/golang/ news", "/r/golang/ news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripMentions(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, StripMentions(got))
		})
	}
}

func TestExtractTopicTextMention(t *testing.T) {
	// "🤖 Иван GPT-5" — "Иван" ссылка на пользователя без username.
	// Эмодзи занимает две UTF-16 единицы, поэтому смещение 3.
	msg := &tgbotapi.Message{
		Text: "🤖 Иван GPT-5",
		Entities: []tgbotapi.MessageEntity{
			{Type: "text_mention", Offset: 3, Length: 4, User: &tgbotapi.User{ID: 7}},
		},
	}

	assert.Equal(t, "🤖 GPT-5", ExtractTopic(msg))
}

func TestExtractTopicEntitiesAndCaption(t *testing.T) {
	msg := &tgbotapi.Message{
		Caption: "/news@Bot robotics",
		CaptionEntities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: 9},
		},
	}

	assert.Equal(t, "robotics", ExtractTopic(msg))
}

func TestRemoveEntitiesOutOfRange(t *testing.T) {
	got := removeEntities("short", []tgbotapi.MessageEntity{{Type: "mention", Offset: 3, Length: 50}}, "mention")

	assert.Equal(t, "sho ", got)
}
