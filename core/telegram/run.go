package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/healthmode/core/config"
	"github.com/m3rciful/healthmode/core/logger"
	tghelpers "github.com/m3rciful/healthmode/core/telegram/helpers"
	"github.com/m3rciful/healthmode/core/telegram/middleware"
	tgsender "github.com/m3rciful/healthmode/core/telegram/sender"
)

const defaultUpdateLanes = 8

// Middleware describes a global bot middleware to be registered via bot.Use.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route declares a single bot handler bound to an arbitrary endpoint.
// Endpoint values are passed directly to tele.Bot.Handle.
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions controls the behaviour of RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry

	DispatcherOptions tgsender.Options
	Dispatcher        *tgsender.Dispatcher

	// UpdateLanes is the number of goroutines handling updates; one user always maps to the same one.
	UpdateLanes int

	Middlewares []Middleware
	Routes      []Route

	DisableWebhookCleanup   bool
	DisableHelperDispatcher bool

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime exposes runtime components to lifecycle hooks.
type Runtime struct {
	Bot        *tele.Bot
	Dispatcher *tgsender.Dispatcher
	Registry   *Registry
}

// Wire installs the per-user lanes, then the middlewares and the routes on bot.
// The lanes go first so every later middleware already runs in per-user order.
func Wire(bot *tele.Bot, lanes *middleware.UserLanes, mws []Middleware, routes []Route) {
	if lanes != nil {
		bot.Use(lanes.Middleware)
	}
	for _, mw := range mws {
		if mw.Use != nil {
			bot.Use(mw.Use)
		}
	}
	for _, r := range routes {
		if r.Endpoint != nil && r.Handler != nil {
			bot.Handle(r.Endpoint, r.Handler)
		}
	}
}

// RunTelegram composes and runs a Telegram bot until ctx is done.
//
// Updates are read synchronously and handed to UserLanes, so one user's
// messages are handled in the order Telegram delivered them. Shutdown drains
// the lanes before OnStop, and the dispatcher after it.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Config == nil {
		return fmt.Errorf("telegram: nil config provided")
	}
	cfg := opts.Config
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}

	poller := BuildPoller(PollerOptions{
		RunMode:                cfg.Telegram.RunMode,
		LongPollTimeoutSeconds: cfg.Telegram.LongPollTimeoutSeconds,
		Webhook: WebhookOptions{
			Listen: cfg.Webhook.Listen,
			Port:   cfg.Webhook.Port,
			URL:    cfg.Webhook.URL,
		},
	})

	built := time.Now()
	bot, err := tele.NewBot(tele.Settings{
		Token:       cfg.Telegram.Token,
		Poller:      poller,
		Client:      BuildHTTPClient(),
		Synchronous: true,
	})
	if err != nil {
		return fmt.Errorf("telegram: bot initialization failed: %w", err)
	}
	logMode(ctx, cfg, poller, logger.Took(built), opts.DisableWebhookCleanup)

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = tgsender.NewDispatcher(opts.DispatcherOptions)
	}
	if !opts.DisableHelperDispatcher {
		tghelpers.SetDispatcher(dispatcher)
		defer tghelpers.SetDispatcher(nil)
	}
	defer dispatcher.Close()

	n := opts.UpdateLanes
	if n <= 0 {
		n = defaultUpdateLanes
	}
	lanes := middleware.NewUserLanes(n, 0)
	defer lanes.Close()

	Wire(bot, lanes, opts.Middlewares, opts.Routes)
	InitBotCommands(bot, reg)

	rt := Runtime{Bot: bot, Dispatcher: dispatcher, Registry: reg}
	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			return err
		}
	}

	stopped := make(chan struct{})
	go func() {
		bot.Start()
		close(stopped)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		bot.Stop()
		<-stopped
		runErr = ctx.Err()
	case <-stopped:
	}
	lanes.Close()

	if opts.OnStop != nil {
		if err := opts.OnStop(context.WithoutCancel(ctx), rt); err != nil {
			return err
		}
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

func logMode(ctx context.Context, cfg *coreconfig.Config, poller tele.Poller, took time.Duration, skipCleanup bool) {
	switch p := poller.(type) {
	case *tele.Webhook:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "webhook mode",
			slog.String("event", "tg.mode"),
			slog.String("mode", RunModeWebhook),
			slog.String("listen", p.Listen),
			slog.String("public_url", p.Endpoint.PublicURL),
			slog.Duration("duration", took),
		)
	case *tele.LongPoller:
		logger.TG.LogAttrs(ctx, slog.LevelInfo, "polling mode",
			slog.String("event", "tg.mode"),
			slog.String("mode", RunModeLongpoll),
			slog.Duration("timeout", p.Timeout),
			slog.Duration("duration", took),
		)
		if skipCleanup {
			return
		}
		// A webhook left from an earlier deployment makes getUpdates fail.
		if err := deleteWebhook(cfg.Telegram.Token, false); err != nil {
			logger.TG.Warn("failed to delete webhook",
				slog.String("event", "tg.delete_webhook"),
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
			return
		}
		logger.TG.Info("webhook deleted",
			slog.String("event", "tg.delete_webhook"),
			slog.String("status", "ok"),
		)
	}
}

func deleteWebhook(token string, dropPending bool) error {
	if strings.TrimSpace(token) == "" {
		return fmt.Errorf("empty token")
	}
	endpoint := fmt.Sprintf("%s/bot%s/deleteWebhook", tele.DefaultApiURL, token)
	body := fmt.Sprintf("drop_pending_updates=%t", dropPending)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("deleteWebhook status: %s", resp.Status)
	}
	return nil
}
