package service

import (
	"context"
	"fmt"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/port"
	"slices"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Poller struct {
	source     port.UpdateSource
	dispatcher *Dispatcher
	sender     port.TextSender
	recorder   port.Recorder
	interval   time.Duration
	timeout    time.Duration
}

type PollerParams struct {
	Source     port.UpdateSource
	Dispatcher *Dispatcher
	Sender     port.TextSender
	Recorder   port.Recorder
	// Interval is the pause between two fetches.
	Interval time.Duration
	// Timeout bounds every fetch and send.
	Timeout time.Duration
}

func NewPoller(p PollerParams) *Poller {
	return &Poller{
		source:     p.Source,
		dispatcher: p.Dispatcher,
		sender:     p.Sender,
		recorder:   p.Recorder,
		interval:   p.Interval,
		timeout:    p.Timeout,
	}
}

// Run polls until ctx is cancelled. It never fails on remote errors; the
// returned error is always the context's.
func (p *Poller) Run(ctx context.Context, session *domain.Session) error {
	log.Info().
		Dur("interval", p.interval).
		Int64("offset", session.LastUpdateID()).
		Msg("starting update loop")

	for {
		if err := p.Poll(ctx, session); err != nil {
			log.Info().Int64("offset", session.LastUpdateID()).Msg("update loop stopped")
			return err
		}

		select {
		case <-ctx.Done():
			log.Info().Int64("offset", session.LastUpdateID()).Msg("update loop stopped")
			return ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

// Poll runs a single fetch and processes the new updates in ascending order.
// A fetch failure leaves the offset untouched. It only returns an error when
// ctx was cancelled, after finishing the update in flight.
func (p *Poller) Poll(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	l := log.With().Str("cycle", newCycleID()).Logger()

	after := session.LastUpdateID()

	fetchCtx, cancel := context.WithTimeout(ctx, p.timeout)
	updates, err := p.source.Fetch(fetchCtx, after)
	cancel()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		p.recorder.FetchFailed()
		l.Error().Err(err).Int64("offset", after).Msg("failed to fetch updates")
		return nil
	}

	l.Trace().Int("updates", len(updates)).Int64("offset", after).Msg("fetched updates")

	slices.SortStableFunc(updates, func(a, b domain.Update) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	for _, update := range updates {
		if err := ctx.Err(); err != nil {
			l.Info().Int64("offset", session.LastUpdateID()).Msg("shutting down, leaving rest of batch")
			return err
		}

		p.recorder.UpdateReceived()

		if !session.Acknowledge(update.ID) {
			p.recorder.DuplicateSkipped()
			l.Debug().Int64("updateId", update.ID).Msg("skipping already processed update")
			continue
		}

		p.recorder.Offset(update.ID)

		p.process(context.WithoutCancel(ctx), &l, session, update)
	}

	return nil
}

func (p *Poller) process(ctx context.Context, l *zerolog.Logger, session *domain.Session, update domain.Update) {
	ul := l.With().Int64("updateId", update.ID).Logger()

	if !update.HasText() {
		ul.Debug().Msg("update has no text, ignoring")
		return
	}

	reply := p.dispatcher.Dispatch(ctx, session, update.Message)
	if reply.NoOp {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := p.sender.SendMessage(sendCtx, reply.ChatID, reply.Text); err != nil {
		p.recorder.ReplyFailed()
		ul.Error().Err(fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)).
			Int64("chatId", reply.ChatID).
			Msg("failed to send reply")
	}
}

func newCycleID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}

	return id.String()
}
