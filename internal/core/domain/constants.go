package domain

import "errors"

var (
	ErrSendingReplyFailed = errors.New("failed to send reply")
	ErrEmptyPrompt        = errors.New("empty prompt")
	ErrModelNotFound      = errors.New("model not found")
	ErrNoHandler          = errors.New("no handler registered for command")
	ErrNoChoices          = errors.New("completion response contained no choices")
)

// ApologyMessage is the only failure users ever get to see.
const ApologyMessage = "Ribbit... something went wrong while thinking about that. Please try again later."

const InitialMessage = "Hi, I'm FrogAI! Ask me anything with /frog <question>.\n" +
	"Use /list_models to see which models I can use, /model to see the current one " +
	"and /change_model <name> to switch."

const DefaultPromptPrefix = "You are FrogAI, a helpful and slightly sarcastic frog living in a Telegram chat. " +
	"Answer the following message: "
