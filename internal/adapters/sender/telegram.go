package sender

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramMessageLimit is the maximum message length accepted by the Bot API, in characters.
const TelegramMessageLimit = 4096

//go:generate mockery --name TelegramBot
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// SendMessage sends text to a chat, split into several messages when it is
// longer than the Telegram limit. It stops at the first failing chunk.
func (s *Telegram) SendMessage(ctx context.Context, chatID int64, text string) error {
	chunks := splitMessage(text, TelegramMessageLimit)

	for i, chunk := range chunks {
		_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   chunk,
		})
		if err != nil {
			return fmt.Errorf("failed to send message part %d/%d: %w", i+1, len(chunks), err)
		}

		log.Trace().Int64("chatId", chatID).Int("part", i+1).Int("parts", len(chunks)).Msg("message sent")
	}

	return nil
}

func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > limit {
		chunks = append(chunks, string(runes[:limit]))
		runes = runes[limit:]
	}

	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
