package service

import (
	"context"
	"errors"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/domain/command"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type pollerFixture struct {
	source   *fakeSource
	sender   *MockSender
	recorder *fakeRecorder
	handler  *echoHandler
	session  *domain.Session
	poller   *Poller
}

// newPollerFixture wires an echo handler for /frog so every dispatched update
// turns into exactly one send.
func newPollerFixture(results ...fetchResult) *pollerFixture {
	f := &pollerFixture{
		source:   &fakeSource{results: results},
		sender:   new(MockSender),
		recorder: newFakeRecorder(),
		handler:  &echoHandler{kind: domain.Ask},
		session:  domain.NewSession(domain.NewDefaultModelSelector()),
	}

	reg := &command.Registry{}
	reg.Register(f.handler)

	f.poller = NewPoller(PollerParams{
		Source:     f.source,
		Dispatcher: NewDispatcher(reg, f.recorder),
		Sender:     f.sender,
		Recorder:   f.recorder,
		Interval:   time.Millisecond,
		Timeout:    time.Second,
	})

	return f
}

func TestPoller_DuplicatesAcrossBatchesDispatchedOnce(t *testing.T) {
	f := newPollerFixture(
		fetchResult{updates: []domain.Update{textUpdate(1, "/frog a"), textUpdate(2, "/frog b"), textUpdate(3, "/frog c")}},
		fetchResult{updates: []domain.Update{textUpdate(2, "/frog b"), textUpdate(3, "/frog c"), textUpdate(4, "/frog d")}},
		fetchResult{updates: []domain.Update{textUpdate(4, "/frog d"), textUpdate(4, "/frog d"), textUpdate(5, "/frog e")}},
		fetchResult{updates: []domain.Update{textUpdate(1, "/frog a")}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), mock.Anything).Return(nil)

	var offsets []int64
	for range 4 {
		require.NoError(t, f.poller.Poll(t.Context(), f.session))
		offsets = append(offsets, f.session.LastUpdateID())
	}

	assert.Equal(t, []string{"/frog a", "/frog b", "/frog c", "/frog d", "/frog e"}, f.handler.texts)
	assert.Equal(t, []int64{3, 4, 5, 5}, offsets)
	assert.Equal(t, []int64{0, 3, 4, 5}, f.source.afters)
	assert.Equal(t, 5, f.recorder.duplicates)
	assert.IsNonDecreasing(t, f.recorder.offsets)
	f.sender.AssertNumberOfCalls(t, "SendMessage", 5)
}

func TestPoller_FetchFailuresDoNotAdvanceOffset(t *testing.T) {
	f := newPollerFixture(
		fetchResult{err: errors.New("connection reset")},
		fetchResult{err: errors.New("malformed response")},
		fetchResult{updates: []domain.Update{
			textUpdate(9, "/frog old"),
			textUpdate(10, "/frog seen"),
			textUpdate(11, "/frog new"),
			textUpdate(12, "/frog newer"),
		}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), mock.Anything).Return(nil)
	f.session.Acknowledge(10)

	require.NoError(t, f.poller.Poll(t.Context(), f.session))
	assert.Equal(t, int64(10), f.session.LastUpdateID())

	require.NoError(t, f.poller.Poll(t.Context(), f.session))
	assert.Equal(t, int64(10), f.session.LastUpdateID())

	require.NoError(t, f.poller.Poll(t.Context(), f.session))
	assert.Equal(t, int64(12), f.session.LastUpdateID())

	assert.Equal(t, []int64{10, 10, 10}, f.source.afters)
	assert.Equal(t, 2, f.recorder.fetchFailed)
	assert.Equal(t, []string{"/frog new", "/frog newer"}, f.handler.texts)
}

func TestPoller_RoundTripFromZero(t *testing.T) {
	f := newPollerFixture(
		fetchResult{updates: []domain.Update{
			textUpdate(3, "/frog a"),
			textUpdate(5, "/frog b"),
			textUpdate(8, "/frog c"),
			textUpdate(13, "/frog d"),
		}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), mock.Anything).Return(nil)

	require.NoError(t, f.poller.Poll(t.Context(), f.session))

	assert.Equal(t, []int64{0}, f.source.afters)
	assert.Equal(t, int64(13), f.session.LastUpdateID())
	assert.Len(t, f.handler.texts, 4)
}

func TestPoller_UnorderedBatchIsProcessedAscending(t *testing.T) {
	f := newPollerFixture(
		fetchResult{updates: []domain.Update{textUpdate(3, "/frog c"), textUpdate(1, "/frog a"), textUpdate(2, "/frog b")}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), mock.Anything).Return(nil)

	require.NoError(t, f.poller.Poll(t.Context(), f.session))

	assert.Equal(t, []string{"/frog a", "/frog b", "/frog c"}, f.handler.texts)
	assert.Equal(t, int64(3), f.session.LastUpdateID())
}

func TestPoller_UpdatesWithoutTextAdvanceOffset(t *testing.T) {
	f := newPollerFixture(
		fetchResult{updates: []domain.Update{
			{ID: 20},
			{ID: 21, Message: &domain.Message{ChatID: 100}},
			textUpdate(22, "hello there"),
		}},
	)

	require.NoError(t, f.poller.Poll(t.Context(), f.session))

	assert.Equal(t, int64(22), f.session.LastUpdateID())
	assert.Empty(t, f.handler.texts)
	f.sender.AssertNotCalled(t, "SendMessage", mock.Anything, mock.Anything, mock.Anything)
}

func TestPoller_SendFailureKeepsOffset(t *testing.T) {
	f := newPollerFixture(
		fetchResult{updates: []domain.Update{textUpdate(1, "/frog a"), textUpdate(2, "/frog b")}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), "/frog a").Return(errors.New("bad gateway")).Once()
	f.sender.On("SendMessage", mock.Anything, int64(100), "/frog b").Return(nil).Once()

	require.NoError(t, f.poller.Poll(t.Context(), f.session))

	assert.Equal(t, int64(2), f.session.LastUpdateID())
	assert.Equal(t, 1, f.recorder.replyFailed)
	f.sender.AssertExpectations(t)
}

func TestPoller_AskFailureSendsApology(t *testing.T) {
	source := &fakeSource{results: []fetchResult{
		{updates: []domain.Update{textUpdate(1, "/frog what is the meaning of life?")}},
	}}
	sender := new(MockSender)
	sender.On("SendMessage", mock.Anything, int64(100), domain.ApologyMessage).Return(nil).Once()

	reg := &command.Registry{}
	reg.Register(command.NewAsk(command.AskParams{
		TextGenerator: failingGenerator{err: errors.New("openrouter API error: status 500")},
		Timeout:       time.Second,
	}))

	p := NewPoller(PollerParams{
		Source:     source,
		Dispatcher: NewDispatcher(reg, newFakeRecorder()),
		Sender:     sender,
		Recorder:   newFakeRecorder(),
		Interval:   time.Millisecond,
		Timeout:    time.Second,
	})

	require.NoError(t, p.Poll(t.Context(), domain.NewSession(domain.NewDefaultModelSelector())))

	sender.AssertExpectations(t)
}

func TestPoller_ShutdownFinishesCurrentUpdate(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	f := newPollerFixture(
		fetchResult{updates: []domain.Update{textUpdate(1, "/frog a"), textUpdate(2, "/frog b"), textUpdate(3, "/frog c")}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), "/frog a").
		Run(func(args mock.Arguments) {
			cancel()
			sendCtx, _ := args.Get(0).(context.Context)
			assert.NoError(t, sendCtx.Err(), "in-flight update must not be cancelled")
		}).
		Return(nil).Once()

	err := f.poller.Poll(ctx, f.session)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(1), f.session.LastUpdateID())
	assert.Equal(t, []string{"/frog a"}, f.handler.texts)
	f.sender.AssertExpectations(t)
}

func TestPoller_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	f := newPollerFixture(
		fetchResult{err: errors.New("timeout")},
		fetchResult{updates: []domain.Update{textUpdate(1, "/frog a")}},
	)
	f.sender.On("SendMessage", mock.Anything, int64(100), mock.Anything).Return(nil)
	f.source.onFetch = func(call int) {
		if call == 3 {
			cancel()
		}
	}

	err := f.poller.Run(ctx, f.session)

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []int64{0, 0, 1}, f.source.afters)
	assert.Equal(t, int64(1), f.session.LastUpdateID())
}

func TestPoller_PollOnCancelledContextDoesNotFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	f := newPollerFixture()

	err := f.poller.Poll(ctx, f.session)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.source.afters)
}

type failingGenerator struct {
	err error
}

func (g failingGenerator) GenerateFromPrompt(_ context.Context, _ domain.Prompt) ([]string, error) {
	return nil, g.err
}
