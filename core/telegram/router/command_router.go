package router

import (
	"log/slog"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	tg "github.com/m3rciful/healthmode/core/telegram"
	"github.com/m3rciful/healthmode/core/telegram/middleware"
)

// CommandRouteOptions configures how commands are wrapped and exposed.
type CommandRouteOptions struct {
	AdminID       int64
	OnAdminReject tele.HandlerFunc
}

// CommandRoutes wraps every registered command with logging, panic recovery
// and, for admin-only commands, the admin check.
func CommandRoutes(reg *tg.Registry, opts CommandRouteOptions) []tg.Route {
	if reg == nil {
		return nil
	}

	adminOnly := middleware.AdminOnlyMiddleware(middleware.AdminOptions{
		AdminID:  opts.AdminID,
		OnReject: opts.OnAdminReject,
	})

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		handler := def.Handler
		h := func(c tele.Context) error {
			return handleWithSummary(c, name, time.Now(), func() error { return handler(c) })
		}
		if def.AdminOnly {
			h = adminOnly(h)
		}
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler:  middleware.LoggerMiddleware(middleware.RecoverMiddleware(h)),
		})
	}

	logger.TWire.Info("commands wired",
		slog.String("event", "tg.wire.commands"),
		slog.Int("count", len(routes)),
	)
	return routes
}
