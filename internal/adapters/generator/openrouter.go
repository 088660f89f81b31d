package generator

import (
	"context"
	"fmt"
	"frogbot/internal/core/domain"

	"github.com/revrost/go-openrouter"
)

type Client interface {
	CreateChatCompletion(ctx context.Context,
		request openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

type OpenRouter struct {
	client Client
}

func NewOpenRouter(apiKey, title string) *OpenRouter {
	return &OpenRouter{
		client: openrouter.NewClient(
			apiKey,
			openrouter.WithXTitle(title),
		),
	}
}

// GenerateFromPrompt sends the prefixed query as a single user message and
// returns the text of every choice in response order.
func (o *OpenRouter) GenerateFromPrompt(ctx context.Context, prompt domain.Prompt) ([]string, error) {
	ccr := openrouter.ChatCompletionRequest{
		Model: prompt.Model.Identifier,
		Messages: []openrouter.ChatCompletionMessage{
			{
				Role: openrouter.ChatMessageRoleUser,
				Content: openrouter.Content{
					Text: prompt.Prefix + prompt.Query,
				},
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, ccr)
	if err != nil {
		return nil, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openrouter API error: %w", domain.ErrNoChoices)
	}

	fragments := make([]string, len(resp.Choices))
	for i, choice := range resp.Choices {
		fragments[i] = choice.Message.Content.Text
	}

	return fragments, nil
}
