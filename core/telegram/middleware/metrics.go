package middleware

import tele "gopkg.in/telebot.v4"

const (
	keyMessages = "messages"
	keyKeyboard = "kb"
)

// metricsContext wraps tele.Context to count sent messages and keyboard usage.
type metricsContext struct{ tele.Context }

func (m metricsContext) count(opts []interface{}) {
	n, _ := m.Get(keyMessages).(int)
	m.Set(keyMessages, n+1)
	if hasKeyboard(opts) {
		m.Set(keyKeyboard, true)
	}
}

func hasKeyboard(opts []interface{}) bool {
	for _, o := range opts {
		switch v := o.(type) {
		case *tele.SendOptions:
			if v != nil && v.ReplyMarkup != nil {
				return true
			}
		case *tele.ReplyMarkup:
			if v != nil {
				return true
			}
		}
	}
	return false
}

func (m metricsContext) Send(what interface{}, opts ...interface{}) error {
	err := m.Context.Send(what, opts...)
	if err == nil {
		m.count(opts)
	}
	return err
}

func (m metricsContext) Reply(what interface{}, opts ...interface{}) error {
	err := m.Context.Reply(what, opts...)
	if err == nil {
		m.count(opts)
	}
	return err
}

// MessageMetricsMiddleware counts the messages a handler sends and whether any carried a keyboard.
func MessageMetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		c.Set(keyMessages, 0)
		c.Set(keyKeyboard, false)
		return next(metricsContext{Context: c})
	}
}

// GetCounters reads the message count and keyboard flag recorded for c.
func GetCounters(c tele.Context) (int, bool) {
	msgs, _ := c.Get(keyMessages).(int)
	kb, _ := c.Get(keyKeyboard).(bool)
	return msgs, kb
}
