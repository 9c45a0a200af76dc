package bot

import (
	"regexp"
	"strings"
	"unicode/utf16"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// commandPattern команда бота, возможно с адресатом: /news или /news@MyBot
var commandPattern = regexp.MustCompile(`^/[A-Za-z0-9_]+(@[A-Za-z0-9_]+)?$`)

// StripMentions убирает из текста упоминания @username (пользователи и каналы)
// и команды бота, схлопывая пробелы. Повторный вызов не меняет результат.
func StripMentions(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, field := range fields {
		if strings.HasPrefix(field, "@") || commandPattern.MatchString(field) {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

// removeEntities вырезает из текста фрагменты сущностей указанных типов.
// Смещения сущностей в Telegram считаются в UTF-16 единицах.
func removeEntities(text string, entities []tgbotapi.MessageEntity, types ...string) string {
	if len(entities) == 0 {
		return text
	}

	units := utf16.Encode([]rune(text))
	removed := make([]bool, len(units))
	for _, entity := range entities {
		if !containsType(types, entity.Type) {
			continue
		}
		start := max(entity.Offset, 0)
		end := min(entity.Offset+entity.Length, len(units))
		for i := start; i < end; i++ {
			removed[i] = true
		}
	}

	kept := make([]uint16, 0, len(units))
	for i, u := range units {
		if removed[i] {
			// пробел вместо сущности, чтобы не склеить соседние слова
			if len(kept) == 0 || kept[len(kept)-1] != ' ' {
				kept = append(kept, ' ')
			}
			continue
		}
		kept = append(kept, u)
	}
	return string(utf16.Decode(kept))
}

func containsType(types []string, t string) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

// ExtractTopic достает тему запроса из сообщения: текст без упоминаний
// пользователей (в том числе без username), каналов и команд бота.
func ExtractTopic(msg *tgbotapi.Message) string {
	text, entities := msg.Text, msg.Entities
	if text == "" {
		text, entities = msg.Caption, msg.CaptionEntities
	}
	text = removeEntities(text, entities, "mention", "text_mention", "bot_command")
	return StripMentions(text)
}
