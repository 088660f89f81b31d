package domain

// Session is the bot's single mutable state. It is owned by the polling loop
// and must not be shared between goroutines.
type Session struct {
	models       *ModelSelector
	lastUpdateID int64
}

func NewSession(models *ModelSelector) *Session {
	return &Session{models: models}
}

func (s *Session) Models() *ModelSelector {
	return s.models
}

// LastUpdateID is the highest update ID acknowledged so far, 0 if none.
func (s *Session) LastUpdateID() int64 {
	return s.lastUpdateID
}

// Acknowledge advances the offset to id and reports true, or reports false
// when id was already seen.
func (s *Session) Acknowledge(id int64) bool {
	if id <= s.lastUpdateID {
		return false
	}

	s.lastUpdateID = id
	return true
}
