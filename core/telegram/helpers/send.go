package helpers

import (
	"errors"
	"log/slog"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	"github.com/m3rciful/healthmode/core/telegram/sender"
)

var globalDispatcher atomic.Pointer[sender.Dispatcher]

// SetDispatcher wires the asynchronous sender used by helper functions. nil sends inline.
func SetDispatcher(d *sender.Dispatcher) {
	globalDispatcher.Store(d)
}

func sendAsync(c tele.Context, action, endpoint string, run func() error) error {
	disp := globalDispatcher.Load()
	if disp == nil {
		return run()
	}

	ctx := BuildContext(c)
	err := disp.EnqueueKeyed(ctx, recipientKey(c), action, endpoint, run)
	if errors.Is(err, sender.ErrQueueFull) || errors.Is(err, sender.ErrQueueClosed) {
		logger.Warn(ctx, "tg.sender", "queue.fallback",
			slog.String("action", action),
			slog.String("endpoint", endpoint),
			slog.String("err", err.Error()),
		)
		return run()
	}
	return err
}

// recipientKey pins all sends to one chat onto the same dispatcher worker.
func recipientKey(c tele.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}

// OutMessage is one plain-text message with optional reply markup.
type OutMessage struct {
	Text   string
	Markup *tele.ReplyMarkup
}

// SendText sends raw text (no parse mode) to the current recipient.
func SendText(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return SendMessages(c, OutMessage{Text: text, Markup: markup})
}

// SendMessages sends msgs to the current recipient in order as a single
// dispatcher job. A retried job resumes after the last delivered message.
func SendMessages(c tele.Context, msgs ...OutMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	next := 0
	return sendAsync(c, "send.text", "sendMessage", func() error {
		for ; next < len(msgs); next++ {
			m := msgs[next]
			var err error
			if m.Markup != nil {
				err = c.Send(m.Text, m.Markup)
			} else {
				err = c.Send(m.Text)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}
