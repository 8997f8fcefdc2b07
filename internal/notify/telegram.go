package notify

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/internal/dialog"
)

// Sender is the part of *tele.Bot used to reach the admin chat.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// TelegramSink sends the intake notice to the admin chat.
// The bot is bound after start, since it does not exist when the app is wired.
type TelegramSink struct {
	adminID int64
	sender  atomic.Pointer[senderBox]
}

type senderBox struct{ s Sender }

// NewTelegramSink creates a sink for adminID. Zero disables it.
func NewTelegramSink(adminID int64) *TelegramSink {
	return &TelegramSink{adminID: adminID}
}

// Bind sets the sender used for delivery.
func (t *TelegramSink) Bind(s Sender) {
	if s == nil {
		t.sender.Store(nil)
		return
	}
	t.sender.Store(&senderBox{s: s})
}

func (t *TelegramSink) Name() string { return "telegram" }

// Deliver sends rec.Notice() to the admin chat as plain text.
func (t *TelegramSink) Deliver(_ context.Context, rec dialog.IntakeRecord) error {
	if t.adminID == 0 {
		return ErrSkipped
	}
	box := t.sender.Load()
	if box == nil {
		return errors.New("notify: telegram sender not bound")
	}
	if _, err := box.s.Send(tele.ChatID(t.adminID), rec.Notice()); err != nil {
		return fmt.Errorf("notify: send to admin %d: %w", t.adminID, err)
	}
	return nil
}
