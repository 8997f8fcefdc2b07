package dialog

import (
	"strings"

	"github.com/m3rciful/healthmode/core/telegram/state"
	"github.com/m3rciful/healthmode/internal/content"
)

// Dialog states. AwaitingConsent is where every new or restarted session begins;
// InMenu is the only resting state after the intake.
const (
	AwaitingConsent state.State = "awaiting_consent"
	AskName         state.State = "ask_name"
	AskPhone        state.State = "ask_phone"
	AskEmail        state.State = "ask_email"
	InMenu          state.State = "in_menu"
)

// Answer keys stored in state.Session.Answers.
const (
	FieldName  = "name"
	FieldPhone = "phone"
	FieldEmail = "email"
)

// usernamePlaceholder stands in for users without a public username.
const usernamePlaceholder = "—"

// InitialSession is the session every user starts with and returns to on restart.
func InitialSession() state.Session {
	return state.NewSession(AwaitingConsent)
}

// Event is one inbound text from a user.
type Event struct {
	UserID   int64
	Text     string
	Username string
}

// Message is one outbound message with the keyboard it carries.
type Message struct {
	Text string
	Menu content.Menu
}

// Reply is everything sent back for a single Event.
type Reply struct {
	Messages []Message
}

func reply(msgs ...Message) Reply {
	return Reply{Messages: msgs}
}

func say(text string, menu content.Menu) Message {
	return Message{Text: text, Menu: menu}
}

// IntakeRecord is the finished intake handed to notifiers. It is never stored in a session.
type IntakeRecord struct {
	Name     string
	Phone    string
	Email    string
	Username string
	UserID   int64
}

// Handle returns "@username" or a placeholder when the user has none.
func (r IntakeRecord) Handle() string {
	u := strings.TrimPrefix(strings.TrimSpace(r.Username), "@")
	if u == "" {
		return usernamePlaceholder
	}
	return "@" + u
}

// Notice renders the administrator notification text.
func (r IntakeRecord) Notice() string {
	return content.AdminNotice(r.Name, r.Phone, r.Email, r.Handle(), r.UserID)
}

// Outcome is the result of one Step: the session to store, the reply to send,
// and, only on intake completion, the record to notify about.
type Outcome struct {
	Next   state.Session
	Reply  Reply
	Notify *IntakeRecord
	// Rule names the transition-table row that fired; used for logging and tests.
	Rule string
}
