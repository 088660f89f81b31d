package port

import (
	"context"
	"frogbot/internal/core/domain"
)

type Command interface {
	// Respond builds the reply for a parsed command. Handlers may mutate the session but never send anything.
	Respond(ctx context.Context, session *domain.Session, message *domain.Message, cmd domain.Command) domain.Reply
	// Kind returns the command kind the handler is responsible for.
	Kind() domain.CommandKind
}

type CommandRegistry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves the handler for a command kind or returns an error if none is registered.
	Get(kind domain.CommandKind) (Command, error)
	// ListCommands returns the kinds of all registered handlers.
	ListCommands() []domain.CommandKind
}
