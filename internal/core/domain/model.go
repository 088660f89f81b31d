package domain

// Update is a single event received from the chat platform. The same ID may
// be delivered more than once.
type Update struct {
	ID      int64
	Message *Message
}

type Message struct {
	ID     int
	ChatID int64
	Text   string
}

// HasText reports whether the update carries a message worth dispatching.
func (u Update) HasText() bool {
	return u.Message != nil && u.Message.Text != ""
}

type Model struct {
	Keyword    string `json:"keyword"`
	Identifier string `json:"identifier"`
}

type Prompt struct {
	Model  Model
	Prefix string
	Query  string
}

// Reply is the outcome of dispatching a command. A NoOp reply means nothing
// is sent back to the chat.
type Reply struct {
	ChatID int64
	Text   string
	NoOp   bool
}

func NewReply(chatID int64, text string) Reply {
	return Reply{ChatID: chatID, Text: text}
}

func NoReply(chatID int64) Reply {
	return Reply{ChatID: chatID, NoOp: true}
}
