package middleware

import (
	"errors"
	"sync"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestUserLanesKeepOrderPerUser(t *testing.T) {
	lanes := NewUserLanes(4, 1)
	var (
		mu  sync.Mutex
		got = map[int64][]int{}
	)
	for i := 0; i < 30; i++ {
		for user := int64(1); user <= 10; user++ {
			user, i := user, i
			if !lanes.Submit(user, func() {
				mu.Lock()
				got[user] = append(got[user], i)
				mu.Unlock()
			}) {
				t.Fatal("Submit() refused an open lane")
			}
		}
	}
	lanes.Close()

	for user, seq := range got {
		for i, v := range seq {
			if v != i {
				t.Fatalf("user %d order = %v", user, seq)
			}
		}
		if len(seq) != 30 {
			t.Fatalf("user %d handled %d updates", user, len(seq))
		}
	}
	if lanes.Submit(1, func() {}) {
		t.Fatal("Submit() after Close must report false")
	}
	lanes.Close()
}

func TestUserLanesMiddleware(t *testing.T) {
	lanes := NewUserLanes(2, 0)
	var handled []string
	h := lanes.Middleware(func(c tele.Context) error {
		handled = append(handled, c.Text())
		if c.Text() == "boom" {
			return errors.New("handler failed")
		}
		return nil
	})

	for _, text := range []string{"a", "boom", "b"} {
		if err := h(newFakeContext(5, text)); err != nil {
			t.Fatalf("middleware returned %v", err)
		}
	}
	lanes.Close()
	if len(handled) != 3 || handled[0] != "a" || handled[1] != "boom" || handled[2] != "b" {
		t.Fatalf("handled = %v", handled)
	}

	panicking := NewUserLanes(1, 0)
	var after bool
	panicking.Submit(1, func() { panic("bad handler") })
	panicking.Submit(1, func() { after = true })
	panicking.Close()
	if !after {
		t.Fatal("a panicking handler must not stop its lane")
	}
}
