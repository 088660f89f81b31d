package port

import (
	"context"
	"frogbot/internal/core/domain"
)

type TextGenerator interface {
	// GenerateFromPrompt returns the text of every completion choice, in response order.
	GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) ([]string, error)
}
