package middleware

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	tghelpers "github.com/m3rciful/healthmode/core/telegram/helpers"
)

// recentUpdates remembers update ids for a short while so an update routed
// through several wrapped handlers is logged once.
type recentUpdates struct {
	mu      sync.Mutex
	seen    map[int]time.Time
	keepFor time.Duration
}

var received = &recentUpdates{seen: make(map[int]time.Time), keepFor: 10 * time.Second}

func (r *recentUpdates) firstTime(updateID int, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, ts := range r.seen {
		if now.Sub(ts) > r.keepFor {
			delete(r.seen, id)
		}
	}
	if _, ok := r.seen[updateID]; ok {
		return false
	}
	r.seen[updateID] = now
	return true
}

// LoggerMiddleware stores the request context (rid, update/user/chat ids) on c
// and logs a sampled debug line per received update.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var chatID, userID int64
		if chat := c.Chat(); chat != nil {
			chatID = chat.ID
		}
		user := c.Sender()
		if user != nil {
			userID = user.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		ctx := logger.WithRID(context.Background(), rid)
		ctx = logger.WithUpdateMeta(ctx, upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.TG)
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && received.firstTime(upd.ID, time.Now()) {
			attrs := []slog.Attr{slog.String("status", "ok")}
			if chat := c.Chat(); chat != nil {
				attrs = append(attrs, slog.String("chat_type", string(chat.Type)))
			}
			if user != nil && user.Username != "" {
				attrs = append(attrs, slog.String("username", logger.SanitizeLimit(user.Username, 64)))
			}
			if t := c.Text(); t != "" {
				attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(t, 256)))
			}
			logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "update.received", attrs...)
		}
		return next(c)
	}
}
