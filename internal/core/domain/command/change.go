package command

import (
	"context"
	"errors"
	"frogbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const changedTemplate = "changed model to: "

type Change struct{}

func NewChange() *Change {
	return &Change{}
}

func (c *Change) Kind() domain.CommandKind {
	return domain.ChangeModel
}

// Respond always names whatever model is current afterwards. An unknown alias
// keeps the previous model and is not reported as an error.
func (c *Change) Respond(_ context.Context, session *domain.Session, message *domain.Message,
	cmd domain.Command) domain.Reply {
	l := log.With().
		Int64("chatId", message.ChatID).
		Str("command", c.Kind().String()).
		Str("alias", cmd.Argument).
		Logger()

	model, err := session.Models().Select(cmd.Argument)
	switch {
	case errors.Is(err, domain.ErrModelNotFound):
		l.Info().Str("model", model.Identifier).Msg("unknown model alias, keeping current model")
	case err != nil:
		l.Error().Err(err).Msg("failed to select model")
	default:
		l.Info().Str("model", model.Identifier).Msg("model changed")
	}

	return domain.NewReply(message.ChatID, changedTemplate+session.Models().Current().Identifier)
}
