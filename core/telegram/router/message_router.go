package router

import (
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/healthmode/core/telegram"
	"github.com/m3rciful/healthmode/core/telegram/commands"
	"github.com/m3rciful/healthmode/core/telegram/middleware"
)

// TextOptions controls fallback behaviour for text updates.
type TextOptions struct {
	// UnknownText answers text when the registry has no text fallback.
	UnknownText tele.HandlerFunc
}

// TextRoutes routes every text update: command aliases typed as text first,
// then the registry text fallback, then opts.UnknownText.
// Only text starting with "/" is matched against commands.
func TextRoutes(reg *tg.Registry, opts TextOptions) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()

		text := c.Text()
		if reg != nil {
			if key, cmd, ok := lookupSlash(reg, text); ok && cmd.Handler != nil && !cmd.AdminOnly {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "text", start, func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, func() error {
				return opts.UnknownText(c)
			})
		}
		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{{
		Endpoint: tele.OnText,
		Handler:  middleware.LoggerMiddleware(middleware.RecoverMiddleware(handler)),
	}}
}

func lookupSlash(reg *tg.Registry, text string) (string, commands.Command, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", commands.Command{}, false
	}
	return reg.LookupCommand(text)
}
