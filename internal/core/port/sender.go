package port

import "context"

type TextSender interface {
	// SendMessage delivers text to a chat.
	SendMessage(ctx context.Context, chatID int64, text string) error
}
