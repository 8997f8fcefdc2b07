// Package dialog implements the conversational state machine of the funnel:
// consent, the three-question intake, and the static content menu.
//
// Engine.Step is a pure function of (session, event). It never touches storage
// or the network; callers persist Outcome.Next and deliver Outcome.Reply.
package dialog

import (
	"strings"

	"github.com/m3rciful/healthmode/core/telegram/state"
	"github.com/m3rciful/healthmode/internal/content"
	"github.com/m3rciful/healthmode/internal/validate"
)

// globalRule is a trigger recognised in every state. It forces the session into
// InMenu and keeps the collected answers.
type globalRule struct {
	name  string
	reply func(c *content.Catalog) Reply
}

// Engine decides transitions. It is safe for concurrent use.
type Engine struct {
	catalog *content.Catalog
	global  map[string]globalRule
	states  map[state.State]func(state.Session, string, Event) Outcome
}

// New builds an Engine rendering replies from catalog.
func New(catalog *content.Catalog) *Engine {
	e := &Engine{
		catalog: catalog,
		global: map[string]globalRule{
			content.BtnSubscribe: {name: "global.subscribe", reply: func(c *content.Catalog) Reply {
				return reply(say(c.Subscribe, content.MenuNone), say(c.Pay, content.MenuPay))
			}},
			content.BtnGoToPayment: {name: "global.payment", reply: func(c *content.Catalog) Reply {
				return reply(say(c.PaymentLink, content.MenuPaid))
			}},
			content.BtnPaid: {name: "global.paid", reply: func(c *content.Catalog) Reply {
				return reply(say(c.AfterPay, content.MenuAfterPay))
			}},
			content.BtnMaterials: {name: "global.materials", reply: func(c *content.Catalog) Reply {
				return reply(say(c.Materials, content.MenuMain))
			}},
		},
	}
	e.states = map[state.State]func(state.Session, string, Event) Outcome{
		AwaitingConsent: e.awaitingConsent,
		AskName:         e.askName,
		AskPhone:        e.askPhone,
		AskEmail:        e.askEmail,
		InMenu:          e.inMenu,
	}
	return e
}

// Catalog exposes the texts the engine renders.
func (e *Engine) Catalog() *content.Catalog {
	return e.catalog
}

// Step computes the next session, the reply and the optional notification for ev.
// It is total: every (session, event) pair yields a reply with at least one message.
func (e *Engine) Step(sess state.Session, ev Event) Outcome {
	trigger := strings.TrimSpace(ev.Text)
	if sess.Answers == nil {
		sess = state.Session{State: sess.State, Answers: map[string]string{}}
	}

	if isRestart(trigger) {
		return Outcome{
			Next:  InitialSession(),
			Reply: reply(say(e.catalog.Welcome, content.MenuRemove), say(e.catalog.Consent, content.MenuConsent)),
			Rule:  "restart",
		}
	}

	if rule, ok := e.global[trigger]; ok {
		next := sess.Clone()
		next.State = InMenu
		return Outcome{Next: next, Reply: rule.reply(e.catalog), Rule: rule.name}
	}

	if handle, ok := e.states[sess.State]; ok {
		return handle(sess, trigger, ev)
	}
	return Outcome{
		Next:  sess.Clone(),
		Reply: reply(say(e.catalog.StartOver, content.MenuNone)),
		Rule:  "fallback.start",
	}
}

func isRestart(trigger string) bool {
	if trigger == content.BtnRestart {
		return true
	}
	cmd, _, _ := strings.Cut(trigger, " ")
	cmd, _, _ = strings.Cut(cmd, "@")
	return cmd == content.CommandStart
}

func stay(sess state.Session, rule string, msgs ...Message) Outcome {
	return Outcome{Next: sess.Clone(), Reply: reply(msgs...), Rule: rule}
}

func advance(sess state.Session, to state.State, field, value, rule string, msgs ...Message) Outcome {
	next := sess.Clone()
	next.State = to
	if field != "" {
		next.Answers[field] = value
	}
	return Outcome{Next: next, Reply: reply(msgs...), Rule: rule}
}

func (e *Engine) awaitingConsent(sess state.Session, trigger string, _ Event) Outcome {
	if trigger == content.BtnConsent {
		return advance(sess, AskName, "", "", "consent.accept", say(e.catalog.AskName, content.MenuRemove))
	}
	return stay(sess, "consent.repeat", say(e.catalog.ConsentOnly, content.MenuConsent))
}

func (e *Engine) askName(sess state.Session, _ string, ev Event) Outcome {
	res := validate.Name(ev.Text)
	if !res.Accepted {
		return stay(sess, "name.reject", say(e.catalog.NameRejected, content.MenuNone))
	}
	return advance(sess, AskPhone, FieldName, res.Value, "name.accept", say(e.catalog.AskPhone, content.MenuNone))
}

func (e *Engine) askPhone(sess state.Session, _ string, ev Event) Outcome {
	res := validate.Phone(ev.Text)
	if !res.Accepted {
		return stay(sess, "phone.reject", say(e.catalog.PhoneRejected, content.MenuNone))
	}
	return advance(sess, AskEmail, FieldPhone, res.Value, "phone.accept", say(e.catalog.AskEmail, content.MenuNone))
}

func (e *Engine) askEmail(sess state.Session, _ string, ev Event) Outcome {
	res := validate.Email(ev.Text)
	if !res.Accepted {
		return stay(sess, "email.reject", say(e.catalog.EmailRejected, content.MenuNone))
	}
	out := advance(sess, InMenu, FieldEmail, res.Value, "email.accept", say(e.catalog.About, content.MenuMain))
	out.Notify = &IntakeRecord{
		Name:     out.Next.Answer(FieldName),
		Phone:    out.Next.Answer(FieldPhone),
		Email:    res.Value,
		Username: ev.Username,
		UserID:   ev.UserID,
	}
	return out
}

func (e *Engine) inMenu(sess state.Session, trigger string, _ Event) Outcome {
	c := e.catalog
	switch trigger {
	case content.BtnPrograms:
		return stay(sess, "menu.programs", say(c.ProgramsPrompt, content.MenuPrograms))
	case content.BtnBack:
		return stay(sess, "menu.back", say(c.BackToMenu, content.MenuMain))
	case content.BtnToMenu:
		return stay(sess, "menu.main", say(c.MenuPrompt, content.MenuMain))
	}
	if p, ok := c.Program(trigger); ok {
		return stay(sess, "menu.program", say(p.Description, content.MenuPrograms))
	}
	return stay(sess, "menu.fallback", say(c.ChooseMenu, content.MenuMain))
}
