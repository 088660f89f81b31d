package command

import (
	"context"
	"frogbot/internal/core/domain"
)

type Start struct{}

func NewStart() *Start {
	return &Start{}
}

func (s *Start) Kind() domain.CommandKind {
	return domain.Start
}

func (s *Start) Respond(_ context.Context, _ *domain.Session, message *domain.Message, _ domain.Command) domain.Reply {
	return domain.NewReply(message.ChatID, domain.InitialMessage)
}
