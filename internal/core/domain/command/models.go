package command

import (
	"context"
	"fmt"
	"frogbot/internal/core/domain"
	"strings"
)

type Models struct {
	text string
}

// NewModels renders the model list once; the table never changes at runtime.
func NewModels(models []domain.Model) *Models {
	sb := &strings.Builder{}

	sb.WriteString("These are the models I can think with:\n\n")

	for _, model := range models {
		_, _ = fmt.Fprintf(sb, " - %s (%s)\n", model.Keyword, model.Identifier)
	}

	sb.WriteString("\nSwitch with /change_model <name>, e.g. /change_model claude")

	return &Models{text: sb.String()}
}

func (m *Models) Kind() domain.CommandKind {
	return domain.ListModels
}

func (m *Models) Respond(_ context.Context, _ *domain.Session, message *domain.Message, _ domain.Command) domain.Reply {
	return domain.NewReply(message.ChatID, m.text)
}
