// Package app wires the funnel bot: configuration, the dialog engine, the
// session store, notifications and the Telegram routes.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	coretelegram "github.com/m3rciful/healthmode/core/telegram"
	"github.com/m3rciful/healthmode/core/telegram/commands"
	"github.com/m3rciful/healthmode/core/telegram/router"
	"github.com/m3rciful/healthmode/core/telegram/sender"
	"github.com/m3rciful/healthmode/core/telegram/state"
	"github.com/m3rciful/healthmode/internal/content"
	"github.com/m3rciful/healthmode/internal/dialog"
	"github.com/m3rciful/healthmode/internal/journal"
	"github.com/m3rciful/healthmode/internal/notify"
)

const commandStats = "/stats"

// IntakeCounter reports stored intakes for the stats command.
type IntakeCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// Deps are the optional collaborators of App. Zero values select the defaults.
type Deps struct {
	// DB enables the intake journal; it is closed when the bot stops.
	DB *sqlx.DB
	// Dispatcher carries replies and notifications; a new one is created when nil.
	Dispatcher *sender.Dispatcher
	// Notifier replaces the Telegram and journal fan-out.
	Notifier notify.Notifier
	Now      func() time.Time
}

// App is the assembled bot.
type App struct {
	cfg *Config

	catalog  *content.Catalog
	engine   *dialog.Engine
	store    state.Store
	notifier notify.Notifier

	adminSink  *notify.TelegramSink
	journal    IntakeCounter
	dispatcher *sender.Dispatcher
	db         *sqlx.DB
	now        func() time.Time
}

// New assembles the bot from cfg.
func New(cfg *Config, deps Deps) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	catalog := content.New(cfg.ContentLinks())
	a := &App{
		cfg:        cfg,
		catalog:    catalog,
		engine:     dialog.New(catalog),
		store:      state.NewMemoryStore(dialog.InitialSession(), state.WithStripes(cfg.Sessions.Stripes)),
		adminSink:  notify.NewTelegramSink(cfg.Telegram.AdminID),
		dispatcher: deps.Dispatcher,
		db:         deps.DB,
		now:        deps.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.dispatcher == nil {
		a.dispatcher = sender.NewDispatcher(sender.Options{})
	}

	sinks := []notify.Sink{a.adminSink}
	if deps.DB != nil {
		repo := journal.NewRepository(deps.DB)
		a.journal = repo
		sinks = append(sinks, notify.NewJournalSink(repo))
	}
	a.notifier = deps.Notifier
	if a.notifier == nil {
		a.notifier = notify.NewAsync(a.dispatcher, sinks...)
	}
	return a, nil
}

// Registry builds the command registry of the bot.
func (a *App) Registry() *coretelegram.Registry {
	reg := coretelegram.NewRegistry()
	reg.RegisterCommand(content.CommandStart, commands.Command{
		Handler:     a.handleText,
		Description: "Начать сначала",
	})
	reg.RegisterCommand(commandStats, commands.Command{
		Handler:     a.handleStats,
		Description: "Статистика бота",
		AdminOnly:   true,
	})
	reg.SetTextFallback(a.handleText)
	return reg
}

// TelegramRunOptions describes how the core runtime should run this bot.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	core := a.cfg.CoreConfig()
	reg := a.Registry()

	// Non-admins typing an admin command get the dialog reply for that text.
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID:       core.Telegram.AdminID,
		OnAdminReject: a.handleText,
	})
	routes = append(routes, router.TextRoutes(reg, router.TextOptions{})...)

	return coretelegram.RunOptions{
		Config:      core,
		Registry:    reg,
		Dispatcher:  a.dispatcher,
		Middlewares: coretelegram.DefaultMiddlewares(core, a.handleLimited),
		Routes:      routes,
		OnStart: func(_ context.Context, rt coretelegram.Runtime) error {
			a.adminSink.Bind(rt.Bot)
			return nil
		},
		OnStop: func(_ context.Context, rt coretelegram.Runtime) error {
			// Drain queued notifications while the bot and the database are still usable.
			if rt.Dispatcher != nil {
				rt.Dispatcher.Close()
			}
			a.adminSink.Bind(nil)
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}
