package port

import "frogbot/internal/core/domain"

// Recorder collects loop statistics.
type Recorder interface {
	FetchFailed()
	UpdateReceived()
	DuplicateSkipped()
	CommandDispatched(kind domain.CommandKind)
	ReplyFailed()
	Offset(id int64)
}
