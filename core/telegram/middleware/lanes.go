package middleware

import (
	"fmt"
	"log/slog"
	"sync"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	tghelpers "github.com/m3rciful/healthmode/core/telegram/helpers"
	"github.com/m3rciful/healthmode/core/telegram/sender"
)

const defaultLaneDepth = 64

// UserLanes runs update handlers on a fixed number of goroutines, picking the
// goroutine by user id. Updates of one user are handled one at a time in the
// order they were submitted; different users proceed in parallel.
//
// The bot must process updates synchronously (tele.Settings.Synchronous) so
// that Middleware sees them in arrival order.
type UserLanes struct {
	lanes []chan func()

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewUserLanes starts n lanes (at least one), each buffering up to depth updates.
func NewUserLanes(n, depth int) *UserLanes {
	if n < 1 {
		n = 1
	}
	if depth < 1 {
		depth = defaultLaneDepth
	}
	l := &UserLanes{lanes: make([]chan func(), n)}
	l.wg.Add(n)
	for i := range l.lanes {
		l.lanes[i] = make(chan func(), depth)
		go l.loop(l.lanes[i])
	}
	return l
}

func (l *UserLanes) loop(in <-chan func()) {
	defer l.wg.Done()
	for fn := range in {
		runLane(fn)
	}
}

func runLane(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.TG.Error("lane panic",
				slog.String("event", "tg.lane.panic"),
				slog.String("err", fmt.Sprint(r)),
			)
		}
	}()
	fn()
}

// Submit queues fn on the lane of key. It blocks while that lane is full and
// reports false once the lanes are closed.
func (l *UserLanes) Submit(key int64, fn func()) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false
	}
	l.lanes[sender.LaneFor(key, len(l.lanes))] <- fn
	return true
}

// Close stops accepting updates and waits until every queued one is handled.
func (l *UserLanes) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for _, ch := range l.lanes {
		close(ch)
	}
	l.mu.Unlock()
	l.wg.Wait()
}

// Middleware hands the rest of the chain to the sender's lane and returns at once.
// Handler errors are logged, since nothing upstream waits for them.
func (l *UserLanes) Middleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		var key int64
		if u := c.Sender(); u != nil {
			key = u.ID
		} else if chat := c.Chat(); chat != nil {
			key = chat.ID
		}
		ok := l.Submit(key, func() {
			if err := next(c); err != nil {
				logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelWarn, "tg.handler.error",
					slog.String("status", "fail"),
					slog.String("err", err.Error()),
				)
			}
		})
		if !ok {
			logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelWarn, "tg.lane.closed",
				slog.String("status", "skip"),
			)
		}
		return nil
	}
}
