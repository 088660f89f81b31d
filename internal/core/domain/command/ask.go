package command

import (
	"context"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/port"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Ask struct {
	textGenerator port.TextGenerator
	promptPrefix  string
	timeout       time.Duration

	l *zerolog.Logger
}

type AskParams struct {
	TextGenerator port.TextGenerator
	PromptPrefix  string
	Timeout       time.Duration
}

func NewAsk(p AskParams) *Ask {
	logger := log.With().
		Str("command", domain.Ask.String()).
		Str("handler", "ask").
		Logger()

	return &Ask{
		textGenerator: p.TextGenerator,
		promptPrefix:  p.PromptPrefix,
		timeout:       p.Timeout,
		l:             &logger,
	}
}

func (a *Ask) Kind() domain.CommandKind {
	return domain.Ask
}

func (a *Ask) Respond(ctx context.Context, session *domain.Session, message *domain.Message,
	cmd domain.Command) domain.Reply {
	model := session.Models().Current()

	l := a.l.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("model", model.Identifier).
		Logger()

	if cmd.Argument == "" {
		l.Debug().Err(domain.ErrEmptyPrompt).Msg("nothing to ask")
		return domain.NoReply(message.ChatID)
	}

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	fragments, err := a.textGenerator.GenerateFromPrompt(ctx, domain.Prompt{
		Model:  model,
		Prefix: a.promptPrefix,
		Query:  cmd.Argument,
	})
	if err != nil {
		l.Error().Err(err).Msg("failed to generate response")
		return domain.NewReply(message.ChatID, domain.ApologyMessage)
	}

	text := strings.Join(fragments, "\n")
	if strings.TrimSpace(text) == "" {
		l.Warn().Int("fragments", len(fragments)).Msg("model returned an empty response")
		return domain.NewReply(message.ChatID, domain.ApologyMessage)
	}

	l.Debug().Int("fragments", len(fragments)).Msg("response generated")

	return domain.NewReply(message.ChatID, text)
}
