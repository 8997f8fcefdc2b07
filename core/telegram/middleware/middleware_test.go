package middleware

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the parts of tele.Context the middlewares touch.
type fakeContext struct {
	tele.Context
	update tele.Update
	store  map[string]interface{}
	sent   []interface{}
}

func newFakeContext(userID int64, text string) *fakeContext {
	user := &tele.User{ID: userID, Username: "tester"}
	return &fakeContext{
		update: tele.Update{ID: 1, Message: &tele.Message{
			Sender: user,
			Chat:   &tele.Chat{ID: userID, Type: tele.ChatPrivate},
			Text:   text,
		}},
		store: map[string]interface{}{},
	}
}

func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Sender() *tele.User {
	if f.update.Message == nil {
		return nil
	}
	return f.update.Message.Sender
}
func (f *fakeContext) Chat() *tele.Chat {
	if f.update.Message == nil {
		return nil
	}
	return f.update.Message.Chat
}
func (f *fakeContext) Text() string {
	if f.update.Message == nil {
		return ""
	}
	return f.update.Message.Text
}
func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) { f.store[key] = v }
func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what)
	return nil
}

func counting(n *int) tele.HandlerFunc {
	return func(tele.Context) error {
		*n++
		return nil
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	now := time.Unix(1000, 0)
	var limited, handled int
	mw := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Second,
		OnLimited: counting(&limited),
		Now:       func() time.Time { return now },
	})
	h := mw(counting(&handled))

	_ = h(newFakeContext(1, "a"))
	_ = h(newFakeContext(1, "b"))
	_ = h(newFakeContext(2, "c"))
	now = now.Add(1500 * time.Millisecond)
	_ = h(newFakeContext(1, "d"))

	if handled != 3 || limited != 1 {
		t.Fatalf("handled=%d limited=%d, want 3/1", handled, limited)
	}

	excluded := RateLimitMiddleware(RateLimitOptions{
		Interval: time.Hour,
		Exclude:  map[string]struct{}{"message": {}},
	})(counting(&handled))
	_ = excluded(newFakeContext(3, "x"))
	_ = excluded(newFakeContext(3, "y"))
	if handled != 5 {
		t.Fatalf("excluded kind must bypass the limit, handled=%d", handled)
	}
}

func TestAdminOnlyMiddleware(t *testing.T) {
	var handled, rejected int
	h := AdminOnlyMiddleware(AdminOptions{AdminID: 42, OnReject: counting(&rejected)})(counting(&handled))
	_ = h(newFakeContext(42, "/stats"))
	_ = h(newFakeContext(7, "/stats"))
	if handled != 1 || rejected != 1 {
		t.Fatalf("handled=%d rejected=%d", handled, rejected)
	}

	noAdmin := AdminOnlyMiddleware(AdminOptions{})(counting(&handled))
	_ = noAdmin(newFakeContext(42, "/stats"))
	if handled != 1 {
		t.Fatal("without a configured admin nobody passes")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	if err := h(newFakeContext(1, "x")); err != nil {
		t.Fatalf("recovered handler err = %v", err)
	}
}

func TestMessageMetricsMiddleware(t *testing.T) {
	c := newFakeContext(1, "x")
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		_ = c.Send("one")
		return c.Send("two", &tele.ReplyMarkup{RemoveKeyboard: true})
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	msgs, kb := GetCounters(c)
	if msgs != 2 || !kb || len(c.sent) != 2 {
		t.Fatalf("msgs=%d kb=%v sent=%d", msgs, kb, len(c.sent))
	}
}

func TestLoggerMiddlewareStoresContext(t *testing.T) {
	c := newFakeContext(5, "hello")
	var rid string
	h := LoggerMiddleware(func(c tele.Context) error {
		rid, _ = c.Get("rid").(string)
		return nil
	})
	_ = h(c)
	if rid != "1:5:5" {
		t.Fatalf("rid = %q", rid)
	}
	if c.Get("logger_ctx") == nil {
		t.Fatal("request context not stored")
	}
}
