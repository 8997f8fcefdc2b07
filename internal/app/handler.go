package app

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/buildinfo"
	"github.com/m3rciful/healthmode/core/logger"
	"github.com/m3rciful/healthmode/core/telegram/helpers"
	"github.com/m3rciful/healthmode/core/telegram/state"
	"github.com/m3rciful/healthmode/internal/dialog"
)

func eventFrom(c tele.Context) dialog.Event {
	ev := dialog.Event{Text: c.Text()}
	if u := c.Sender(); u != nil {
		ev.UserID = u.ID
		ev.Username = u.Username
	}
	return ev
}

// handleText runs one dialog step for the sender and replies with its outcome.
// The notifier is called only after the new session is stored.
func (a *App) handleText(c tele.Context) error {
	ev := eventFrom(c)
	if ev.UserID == 0 {
		return nil
	}
	ctx := helpers.BuildContext(c)

	var (
		prev state.State
		out  dialog.Outcome
	)
	_, err := a.store.Update(ev.UserID, func(sess state.Session) (state.Session, error) {
		prev = sess.State
		out = a.engine.Step(sess, ev)
		return out.Next, nil
	})
	if err != nil {
		return fmt.Errorf("app: update session: %w", err)
	}

	msgs := make([]helpers.OutMessage, 0, len(out.Reply.Messages))
	menus := make([]string, 0, len(out.Reply.Messages))
	for _, m := range out.Reply.Messages {
		msgs = append(msgs, helpers.OutMessage{Text: m.Text, Markup: markupFor(a.catalog, m.Menu)})
		menus = append(menus, m.Menu.String())
	}

	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, logger.Dialog, slog.LevelDebug, "dialog.transition",
			slog.String("state", string(prev)),
			slog.String("next_state", string(out.Next.State)),
			slog.String("rule", out.Rule),
			slog.Int("messages", len(msgs)),
			slog.String("kb", strings.Join(menus, ",")),
		)
	}

	sendErr := helpers.SendMessages(c, msgs...)
	if out.Notify != nil {
		a.notifier.Notify(ctx, *out.Notify)
	}
	return sendErr
}

// handleLimited answers an update the rate limiter dropped. The session is not touched,
// so the user repeats the same answer.
func (a *App) handleLimited(c tele.Context) error {
	return helpers.SendText(c, a.catalog.SlowDown, nil)
}

// stateOrder lists states in funnel order for the stats report.
var stateOrder = []state.State{dialog.AwaitingConsent, dialog.AskName, dialog.AskPhone, dialog.AskEmail, dialog.InMenu}

func (a *App) handleStats(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	counts := a.store.CountByState()

	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %d\n", a.store.Len())
	for _, st := range stateOrder {
		fmt.Fprintf(&b, "  %s: %d\n", st, counts[st])
		delete(counts, st)
	}
	for st, n := range counts {
		fmt.Fprintf(&b, "  %s: %d\n", orUnset(st), n)
	}

	if a.journal != nil {
		n, err := a.journal.CountSince(ctx, a.now().Add(-24*time.Hour))
		if err != nil {
			logger.LogEvent(ctx, logger.Journal, slog.LevelWarn, "journal.count",
				slog.String("status", "fail"),
				slog.String("err", err.Error()),
			)
			b.WriteString("Intakes (24h): unavailable\n")
		} else {
			fmt.Fprintf(&b, "Intakes (24h): %d\n", n)
		}
	}

	if d := a.dispatcher; d != nil {
		fmt.Fprintf(&b, "Outbox: pending %d, sent %d, failed %d\n", d.Pending(), d.DoneCount(), d.ErrorCount())
	}
	fmt.Fprintf(&b, "Build: %s", buildinfo.String())

	return helpers.SendText(c, b.String(), nil)
}

func orUnset(st state.State) string {
	if st == "" {
		return "unset"
	}
	return string(st)
}
