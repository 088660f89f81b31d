package service

import (
	"context"
	"errors"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type Dispatcher struct {
	registry port.CommandRegistry
	recorder port.Recorder
}

func NewDispatcher(registry port.CommandRegistry, recorder port.Recorder) *Dispatcher {
	return &Dispatcher{registry: registry, recorder: recorder}
}

// Dispatch parses the message and lets the matching handler build a reply.
// Unrecognized text, or a command without a handler, yields a no-op reply.
func (d *Dispatcher) Dispatch(ctx context.Context, session *domain.Session, message *domain.Message) domain.Reply {
	cmd := domain.ParseCommand(message.Text)

	l := log.With().
		Int64("chatId", message.ChatID).
		Int("messageId", message.ID).
		Stringer("command", cmd.Kind).
		Logger()

	if cmd.Kind == domain.Unrecognized {
		l.Debug().Msg("unrecognized command")
		return domain.NoReply(message.ChatID)
	}

	handler, err := d.registry.Get(cmd.Kind)
	if err != nil {
		if errors.Is(err, domain.ErrNoHandler) {
			l.Debug().Msg("no handler for command")
		} else {
			l.Error().Err(err).Msg("failed to fetch command handler")
		}
		return domain.NoReply(message.ChatID)
	}

	d.recorder.CommandDispatched(cmd.Kind)
	l.Debug().Msg("dispatching command")

	return handler.Respond(ctx, session, message, cmd)
}
