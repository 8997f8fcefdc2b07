package middleware

import (
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/healthmode/core/config"
	"github.com/m3rciful/healthmode/core/logger"
	tghelpers "github.com/m3rciful/healthmode/core/telegram/helpers"
)

// RateLimitOptions configures behaviour of the rate limit middleware.
type RateLimitOptions struct {
	Interval time.Duration
	// Exclude holds update kinds (coreconfig.UpdateMessage, coreconfig.UpdateCallback) that bypass the limit.
	Exclude   map[string]struct{}
	OnLimited tele.HandlerFunc
	// Now is used by tests; defaults to time.Now.
	Now func() time.Time
}

func updateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return coreconfig.UpdateCallback
	case upd.Message != nil:
		return coreconfig.UpdateMessage
	}
	return "other"
}

// RateLimitMiddleware drops updates that arrive from the same user faster than opts.Interval.
func RateLimitMiddleware(opts RateLimitOptions) tele.MiddlewareFunc {
	var (
		mu       sync.Mutex
		lastSeen = make(map[int64]time.Time)
	)
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	allow := func(userID int64) bool {
		mu.Lock()
		defer mu.Unlock()
		t := now()
		if last, ok := lastSeen[userID]; ok && t.Sub(last) < opts.Interval {
			return false
		}
		lastSeen[userID] = t
		return true
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil || opts.Interval <= 0 {
				return next(c)
			}
			if _, skip := opts.Exclude[updateKind(c.Update())]; skip {
				return next(c)
			}
			if allow(user.ID) {
				return next(c)
			}

			logger.LogEvent(tghelpers.BuildContext(c), logger.TG, slog.LevelWarn, "tg.rate_limit",
				slog.String("status", "rate_limited"),
				slog.Duration("interval", opts.Interval),
			)
			if opts.OnLimited != nil {
				_ = opts.OnLimited(c)
			}
			return nil
		}
	}
}
