package state

import (
	"errors"
	"sync"
	"testing"
)

const (
	stateStart State = "start"
	stateNext  State = "next"
)

func TestMemoryStoreGetCreatesInitial(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart))

	if got := store.Len(); got != 0 {
		t.Fatalf("Len() = %d before first access, want 0", got)
	}
	sess := store.Get(42)
	if sess.State != stateStart {
		t.Fatalf("State = %q, want %q", sess.State, stateStart)
	}
	if len(sess.Answers) != 0 {
		t.Fatalf("Answers = %v, want empty", sess.Answers)
	}
	if got := store.Len(); got != 1 {
		t.Fatalf("Len() = %d after first access, want 1", got)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart))

	sess := store.Get(1)
	sess.Answers["name"] = "Anna"
	if store.Get(1).Has("name") {
		t.Fatal("mutating a returned session leaked into the store")
	}

	sess.State = stateNext
	store.Put(1, sess)
	sess.Answers["phone"] = "+7999"
	got := store.Get(1)
	if got.Has("phone") {
		t.Fatal("mutating a session after Put leaked into the store")
	}
	if got.Answer("name") != "Anna" || got.State != stateNext {
		t.Fatalf("Get() = %+v, want stored session", got)
	}
}

func TestMemoryStoreClearResetsToInitial(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart))
	store.Put(7, Session{State: stateNext, Answers: map[string]string{"name": "Oksana"}})

	store.Clear(7)

	got := store.Get(7)
	if got.State != stateStart || len(got.Answers) != 0 {
		t.Fatalf("after Clear got %+v, want initial session", got)
	}
}

func TestMemoryStoreUpdateErrorLeavesSession(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart))
	errBoom := errors.New("boom")

	_, err := store.Update(5, func(s Session) (Session, error) {
		s.State = stateNext
		s.Answers["name"] = "x"
		return s, errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("Update() err = %v, want %v", err, errBoom)
	}
	got := store.Get(5)
	if got.State != stateStart || got.Has("name") {
		t.Fatalf("failed Update changed the session: %+v", got)
	}
}

func TestMemoryStoreUpdateSerialisesSameUser(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart), WithStripes(4))

	const workers = 64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = store.Update(99, func(s Session) (Session, error) {
				n := len(s.Answers)
				s.Answers[string(rune('a'+n%26))+string(rune('A'+n/26))] = "v"
				return s, nil
			})
		}()
	}
	wg.Wait()

	if got := len(store.Get(99).Answers); got != workers {
		t.Fatalf("answers = %d, want %d (lost updates)", got, workers)
	}
}

func TestMemoryStoreNegativeUserID(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart), WithStripes(3))

	next, err := store.Update(-1001234567890, func(s Session) (Session, error) {
		s.State = stateNext
		return s, nil
	})
	if err != nil {
		t.Fatalf("Update() err = %v", err)
	}
	if next.State != stateNext {
		t.Fatalf("State = %q, want %q", next.State, stateNext)
	}
}

func TestMemoryStoreCountByState(t *testing.T) {
	store := NewMemoryStore(NewSession(stateStart))
	store.Get(1)
	store.Get(2)
	store.Put(3, NewSession(stateNext))

	counts := store.CountByState()
	if counts[stateStart] != 2 || counts[stateNext] != 1 {
		t.Fatalf("CountByState() = %v", counts)
	}
}
