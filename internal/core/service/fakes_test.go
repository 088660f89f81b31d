package service

import (
	"context"
	"frogbot/internal/core/domain"
	"sync"

	"github.com/stretchr/testify/mock"
)

type fetchResult struct {
	updates []domain.Update
	err     error
}

// fakeSource replays scripted fetch results and records the offsets it was asked for.
type fakeSource struct {
	results []fetchResult
	afters  []int64
	onFetch func(call int)
}

func (f *fakeSource) Fetch(ctx context.Context, after int64) ([]domain.Update, error) {
	f.afters = append(f.afters, after)
	call := len(f.afters)
	if f.onFetch != nil {
		f.onFetch(call)
	}

	if _, ok := ctx.Deadline(); !ok {
		panic("fetch without deadline")
	}

	if call > len(f.results) {
		return nil, nil
	}

	r := f.results[call-1]
	return r.updates, r.err
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	args := m.Called(ctx, chatID, text)
	return args.Error(0)
}

type fakeRecorder struct {
	mu          sync.Mutex
	fetchFailed int
	received    int
	duplicates  int
	dispatched  map[domain.CommandKind]int
	replyFailed int
	offsets     []int64
}

func newFakeRecorder() *fakeRecorder {
	return &fakeRecorder{dispatched: map[domain.CommandKind]int{}}
}

func (r *fakeRecorder) FetchFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetchFailed++
}

func (r *fakeRecorder) UpdateReceived() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received++
}

func (r *fakeRecorder) DuplicateSkipped() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.duplicates++
}

func (r *fakeRecorder) CommandDispatched(kind domain.CommandKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dispatched[kind]++
}

func (r *fakeRecorder) ReplyFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replyFailed++
}

func (r *fakeRecorder) Offset(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offsets = append(r.offsets, id)
}

// echoHandler replies with the message text so tests can see what was dispatched.
type echoHandler struct {
	kind  domain.CommandKind
	texts []string
}

func (h *echoHandler) Respond(_ context.Context, _ *domain.Session, message *domain.Message,
	_ domain.Command) domain.Reply {
	h.texts = append(h.texts, message.Text)
	return domain.NewReply(message.ChatID, message.Text)
}

func (h *echoHandler) Kind() domain.CommandKind {
	return h.kind
}

func textUpdate(id int64, text string) domain.Update {
	return domain.Update{ID: id, Message: &domain.Message{ID: int(id), ChatID: 100, Text: text}}
}
