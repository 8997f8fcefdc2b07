package sender

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

var errTransient = errors.New("transient")

func retryTransient(err error) bool { return errors.Is(err, errTransient) }

func TestDispatcherRetriesUntilSuccess(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 2, RetryBackoff: time.Millisecond, Retryable: retryTransient})
	var calls atomic.Int32
	err := d.Enqueue(context.Background(), "notify", "telegram", func() error {
		if calls.Add(1) < 3 {
			return errTransient
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Enqueue() err = %v", err)
	}
	d.Close()

	if got := calls.Load(); got != 3 {
		t.Fatalf("calls = %d, want 3", got)
	}
	if d.ErrorCount() != 0 || d.DoneCount() != 1 {
		t.Fatalf("errors=%d done=%d", d.ErrorCount(), d.DoneCount())
	}
}

func TestDispatcherPermanentFailure(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, MaxRetries: 3, RetryBackoff: time.Millisecond, Retryable: retryTransient})
	var calls atomic.Int32
	_ = d.Enqueue(context.Background(), "notify", "telegram", func() error {
		calls.Add(1)
		return errors.New("chat not found")
	})
	d.Close()

	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1 (no retry for permanent errors)", got)
	}
	if d.ErrorCount() != 1 {
		t.Fatalf("ErrorCount = %d, want 1", d.ErrorCount())
	}
}

func TestDispatcherQueueFullAndClosed(t *testing.T) {
	d := NewDispatcher(Options{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	block := func() error {
		once.Do(func() { close(started) })
		<-release
		return nil
	}

	if err := d.Enqueue(context.Background(), "a", "", block); err != nil {
		t.Fatal(err)
	}
	<-started
	if err := d.Enqueue(context.Background(), "b", "", block); err != nil {
		t.Fatal(err)
	}
	if d.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", d.Pending())
	}
	if err := d.Enqueue(context.Background(), "c", "", block); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("third Enqueue err = %v, want ErrQueueFull", err)
	}
	close(release)
	d.Close()
	d.Close()

	if err := d.Enqueue(context.Background(), "d", "", block); !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("Enqueue after Close err = %v, want ErrQueueClosed", err)
	}
	if err := d.Enqueue(context.Background(), "e", "", nil); err == nil {
		t.Fatal("nil run must be rejected")
	}
}

func TestClassifyError(t *testing.T) {
	cases := map[string]error{
		"timeout":  context.DeadlineExceeded,
		"http_4xx": &tele.Error{Code: 400, Description: "Bad Request: chat not found"},
		"http_5xx": &tele.Error{Code: 502, Description: "Bad Gateway"},
		"unknown":  errors.New("boom"),
	}
	for want, err := range cases {
		if got := classifyError(err); got != want {
			t.Errorf("classifyError(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestEnqueueKeyedKeepsOrderPerKey(t *testing.T) {
	d := NewDispatcher(Options{Workers: 4, QueueSize: 512})
	var (
		mu      sync.Mutex
		got     = map[int64][]int{}
		running = map[int64]int{}
		overlap bool
	)
	for i := 0; i < 50; i++ {
		for key := int64(1); key <= 6; key++ {
			key, i := key, i
			err := d.EnqueueKeyed(context.Background(), key, "send.text", "sendMessage", func() error {
				mu.Lock()
				running[key]++
				if running[key] > 1 {
					overlap = true
				}
				mu.Unlock()
				time.Sleep(50 * time.Microsecond)
				mu.Lock()
				running[key]--
				got[key] = append(got[key], i)
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Fatalf("EnqueueKeyed() err = %v", err)
			}
		}
	}
	d.Close()

	if overlap {
		t.Fatal("jobs with the same key ran concurrently")
	}
	for key, seq := range got {
		if len(seq) != 50 {
			t.Fatalf("key %d ran %d jobs, want 50", key, len(seq))
		}
		for i, v := range seq {
			if v != i {
				t.Fatalf("key %d order = %v", key, seq)
			}
		}
	}
}

func TestLaneFor(t *testing.T) {
	if LaneFor(123, 1) != 0 || LaneFor(123, 0) != 0 {
		t.Fatal("single lane must always be 0")
	}
	for _, key := range []int64{0, 1, 7, -7, 1 << 40, -1 << 62} {
		lane := LaneFor(key, 5)
		if lane < 0 || lane >= 5 {
			t.Fatalf("LaneFor(%d, 5) = %d", key, lane)
		}
		if LaneFor(key, 5) != lane {
			t.Fatalf("LaneFor(%d) is not stable", key)
		}
	}
}
