package command

import (
	"errors"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/port"
	"slices"

	"github.com/rs/zerolog/log"
)

type Registry struct {
	commands map[domain.CommandKind]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[domain.CommandKind]port.Command)
	}

	log.Info().Stringer("handler", handler.Kind()).Msg("adding command handler to registry")
	r.commands[handler.Kind()] = handler
}

func (r *Registry) Get(kind domain.CommandKind) (port.Command, error) {
	log.Debug().Stringer("command", kind).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, errors.New("can't fetch command, registry not initialized")
	}

	handler, ok := r.commands[kind]
	if !ok {
		return nil, domain.ErrNoHandler
	}

	return handler, nil
}

// ListCommands returns the registered kinds in ascending order.
func (r *Registry) ListCommands() []domain.CommandKind {
	keys := make([]domain.CommandKind, 0, len(r.commands))

	for k := range r.commands {
		keys = append(keys, k)
	}

	slices.Sort(keys)
	return keys
}
