package command

import (
	"context"
	"frogbot/internal/core/domain"
)

const currentTemplate = "i'm currently using: "

type Current struct{}

func NewCurrent() *Current {
	return &Current{}
}

func (c *Current) Kind() domain.CommandKind {
	return domain.ShowCurrentModel
}

func (c *Current) Respond(_ context.Context, session *domain.Session, message *domain.Message,
	_ domain.Command) domain.Reply {
	return domain.NewReply(message.ChatID, currentTemplate+session.Models().Current().Identifier)
}
