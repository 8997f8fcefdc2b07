// Package notify delivers finished intakes to the administrator and to the
// optional journal. Delivery never blocks or fails the user's reply.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/m3rciful/healthmode/core/logger"
	"github.com/m3rciful/healthmode/core/telegram/sender"
	"github.com/m3rciful/healthmode/internal/dialog"
)

// ErrSkipped is returned by a sink that has nothing to do for the record.
var ErrSkipped = errors.New("notify: skipped")

// Notifier accepts finished intakes. Notify returns immediately and never reports errors.
type Notifier interface {
	Notify(ctx context.Context, rec dialog.IntakeRecord)
}

// Sink is one fallible delivery target.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, rec dialog.IntakeRecord) error
}

// Queue is the part of *sender.Dispatcher used to run deliveries.
type Queue interface {
	Enqueue(ctx context.Context, action, endpoint string, run func() error) error
}

// Async fans a record out to every sink through a Queue.
type Async struct {
	queue Queue
	sinks []Sink
	// spawn runs a delivery the queue refused.
	spawn func(func())
}

// NewAsync builds a notifier over sinks. A nil queue runs every delivery in its own goroutine.
func NewAsync(queue Queue, sinks ...Sink) *Async {
	return &Async{queue: queue, sinks: sinks, spawn: func(fn func()) { go fn() }}
}

// Notify schedules one delivery job per sink.
func (a *Async) Notify(ctx context.Context, rec dialog.IntakeRecord) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithoutCancel(ctx)
	for _, s := range a.sinks {
		run := a.job(ctx, s, rec)
		if a.queue != nil {
			err := a.queue.Enqueue(ctx, "notify."+s.Name(), "", run)
			if err == nil {
				continue
			}
			logger.LogEvent(ctx, logger.Notify, slog.LevelDebug, "notify.inline",
				slog.String("sink", s.Name()),
				slog.String("cause", err.Error()),
			)
		}
		a.spawn(func() { _ = run() })
	}
}

// job wraps a sink delivery with logging. Skips are not errors, so the queue
// does not retry them; other errors are returned for the queue to retry.
func (a *Async) job(ctx context.Context, s Sink, rec dialog.IntakeRecord) func() error {
	attempt := 0
	return func() error {
		attempt++
		start := time.Now()
		err := s.Deliver(ctx, rec)
		attrs := []slog.Attr{
			slog.String("sink", s.Name()),
			slog.Int64("user_id", rec.UserID),
			slog.Int("attempts", attempt),
			slog.Duration("duration", logger.Took(start)),
		}
		switch {
		case errors.Is(err, ErrSkipped):
			logger.LogEvent(ctx, logger.Notify, slog.LevelInfo, "notify.skip", append(attrs, slog.String("status", "skip"))...)
			return nil
		case err != nil:
			logger.LogEvent(ctx, logger.Notify, slog.LevelWarn, "notify.fail",
				append(attrs, slog.String("status", "fail"), slog.String("err", err.Error()))...)
			return err
		}
		logger.LogEvent(ctx, logger.Notify, slog.LevelInfo, "notify.sent", append(attrs, slog.String("status", "ok"))...)
		return nil
	}
}

var _ Queue = (*sender.Dispatcher)(nil)
