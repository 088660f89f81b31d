package source

import (
	"context"
	"fmt"
	"frogbot/internal/core/domain"
	"net/http"
	"slices"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

// BatchLimit is the maximum number of updates requested per fetch.
const BatchLimit = 100

type UpdatesClient interface {
	GetUpdates(config tgbotapi.UpdateConfig) ([]tgbotapi.Update, error)
}

type Telegram struct {
	client UpdatesClient
}

// NewTelegram builds a getUpdates client without calling getMe, so a flaky
// network at startup is handled like any other failed fetch. The timeout
// bounds each HTTP request since the library call takes no context.
func NewTelegram(token string, timeout time.Duration) *Telegram {
	api := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: BatchLimit,
	}
	api.SetAPIEndpoint(tgbotapi.APIEndpoint)

	return &Telegram{client: api}
}

type fetchResult struct {
	updates []tgbotapi.Update
	err     error
}

// Fetch returns the updates after the given ID in ascending order. An after of
// 0 requests everything Telegram still holds.
func (t *Telegram) Fetch(ctx context.Context, after int64) ([]domain.Update, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := tgbotapi.NewUpdate(telegramOffset(after))
	config.Limit = BatchLimit
	config.Timeout = 0
	config.AllowedUpdates = []string{"message"}

	result := make(chan fetchResult, 1)
	go func() {
		updates, err := t.client.GetUpdates(config)
		result <- fetchResult{updates: updates, err: err}
	}()

	var r fetchResult
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("telegram getUpdates: %w", ctx.Err())
	case r = <-result:
	}

	if r.err != nil {
		return nil, fmt.Errorf("telegram getUpdates: %w", r.err)
	}

	updates := make([]domain.Update, 0, len(r.updates))
	for _, u := range r.updates {
		updates = append(updates, toDomainUpdate(u))
	}

	slices.SortStableFunc(updates, func(a, b domain.Update) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	log.Trace().Int64("after", after).Int("updates", len(updates)).Msg("fetched telegram updates")

	return updates, nil
}

// telegramOffset converts the last seen ID into the Bot API offset, which is
// the first ID to return.
func telegramOffset(after int64) int {
	if after <= 0 {
		return 0
	}

	return int(after + 1)
}

func toDomainUpdate(u tgbotapi.Update) domain.Update {
	update := domain.Update{ID: int64(u.UpdateID)}

	m := u.Message
	if m == nil || m.Chat == nil {
		return update
	}

	update.Message = &domain.Message{
		ID:     m.MessageID,
		ChatID: m.Chat.ID,
		Text:   m.Text,
	}

	return update
}
