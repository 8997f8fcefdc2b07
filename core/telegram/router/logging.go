package router

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	tghelpers "github.com/m3rciful/healthmode/core/telegram/helpers"
	"github.com/m3rciful/healthmode/core/telegram/middleware"
)

// handleWithSummary runs fn under handlerName and logs one summary line for it.
func handleWithSummary(c tele.Context, handlerName string, start time.Time, fn func() error) error {
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, "", err)
	return err
}

func logHandlerSummary(c tele.Context, handlerName string, start time.Time, statusOverride string, err error) {
	ctx := tghelpers.WithHandler(c, handlerName)
	msgs, kb := middleware.GetCounters(c)

	status := statusOverride
	if status == "" {
		status = logger.Status(err)
	}
	attrs := []slog.Attr{
		slog.String("status", status),
		slog.Int("messages", msgs),
		slog.Bool("kb", kb),
		slog.Duration("duration", logger.Took(start)),
	}
	level := slog.LevelInfo
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			slog.String("cause", errorKind(err)),
		)
	}
	logger.LogEvent(ctx, logger.TG, level, "handler.handled", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "unknown"
	}
	name = strings.TrimPrefix(name, "/")
	name = strings.ReplaceAll(name, " ", "_")
	return strings.ToLower(name)
}

// errorKind names the Bot API failure class when err carries one.
func errorKind(err error) string {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return "api_" + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(apiErr.Description), " ", "_"))
	}
	var flood tele.FloodError
	if errors.As(err, &flood) {
		return "flood"
	}
	return "internal"
}
