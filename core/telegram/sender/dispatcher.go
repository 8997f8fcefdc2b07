// Package sender runs outbound Bot API calls on a small worker pool with retries,
// so update handlers return without waiting on the network.
package sender

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/healthmode/core/logger"
	"github.com/m3rciful/healthmode/core/telegram/netutil"
)

const component = "tg.sender"

var (
	// ErrQueueClosed is returned when enqueue is attempted after dispatcher stop.
	ErrQueueClosed = errors.New("telegram sender: queue closed")
	// ErrQueueFull indicates the queue is saturated and the job was not accepted.
	ErrQueueFull = errors.New("telegram sender: queue full")
)

// Options controls the behaviour of the outbound dispatcher.
type Options struct {
	QueueSize    int
	Workers      int
	MaxRetries   int
	RetryBackoff time.Duration
	// MaxDuration bounds the time spent retrying a single job.
	MaxDuration time.Duration
	// Retryable decides whether a failed attempt is repeated; defaults to netutil.ShouldRetry.
	Retryable func(error) bool
}

type job struct {
	ctx      context.Context
	action   string
	endpoint string
	run      func() error
}

// Dispatcher executes queued jobs asynchronously with retries. Each worker
// owns a queue, so jobs sharing a key run one after another in enqueue order.
type Dispatcher struct {
	opts   Options
	queues []chan job
	next   atomic.Uint64

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup

	errs atomic.Uint64
	done atomic.Uint64
}

// NewDispatcher starts a dispatcher, filling zero options with defaults.
func NewDispatcher(opts Options) *Dispatcher {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 2 * time.Second
	}
	if opts.MaxDuration <= 0 {
		opts.MaxDuration = 12 * time.Second
	}
	if opts.Retryable == nil {
		opts.Retryable = netutil.ShouldRetry
	}

	depth := (opts.QueueSize + opts.Workers - 1) / opts.Workers
	d := &Dispatcher{
		opts:   opts,
		queues: make([]chan job, opts.Workers),
	}
	d.wg.Add(opts.Workers)
	for i := range d.queues {
		d.queues[i] = make(chan job, depth)
		go d.worker(d.queues[i])
	}
	return d
}

// Enqueue schedules run for asynchronous execution on the next worker in turn.
// run is called again on retryable failures, so it must tolerate repetition.
func (d *Dispatcher) Enqueue(ctx context.Context, action, endpoint string, run func() error) error {
	lane := int((d.next.Add(1) - 1) % uint64(len(d.queues)))
	return d.enqueue(lane, job{ctx: ctx, action: action, endpoint: endpoint, run: run})
}

// EnqueueKeyed is Enqueue pinned to the worker owning key, typically a chat id.
// Jobs with the same key never overlap and finish in enqueue order.
func (d *Dispatcher) EnqueueKeyed(ctx context.Context, key int64, action, endpoint string, run func() error) error {
	return d.enqueue(LaneFor(key, len(d.queues)), job{ctx: ctx, action: action, endpoint: endpoint, run: run})
}

// LaneFor maps key onto one of n lanes.
func LaneFor(key int64, n int) int {
	if n <= 1 {
		return 0
	}
	return int(uint64(key) % uint64(n))
}

func (d *Dispatcher) enqueue(lane int, j job) error {
	if j.run == nil {
		return errors.New("telegram sender: nil run function")
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrQueueClosed
	}
	select {
	case d.queues[lane] <- j:
		return nil
	default:
		return ErrQueueFull
	}
}

// ErrorCount returns the number of jobs that failed after all attempts.
func (d *Dispatcher) ErrorCount() uint64 {
	return d.errs.Load()
}

// DoneCount returns the number of jobs that completed successfully.
func (d *Dispatcher) DoneCount() uint64 {
	return d.done.Load()
}

// Pending returns the number of queued jobs not yet picked by a worker.
func (d *Dispatcher) Pending() int {
	n := 0
	for _, q := range d.queues {
		n += len(q)
	}
	return n
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, q := range d.queues {
		close(q)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker(jobs <-chan job) {
	defer d.wg.Done()
	for j := range jobs {
		d.handleJob(j)
	}
}

func (d *Dispatcher) handleJob(j job) {
	ctx := j.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	// Jobs outlive the update that queued them; keep values, drop cancellation.
	deadlineCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.opts.MaxDuration)
	defer cancel()

	start := time.Now()
	attempts := d.opts.MaxRetries + 1
	var lastErr error

retry:
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = j.run(); lastErr == nil {
			d.done.Add(1)
			logger.Debug(ctx, component, "send.success",
				append(jobAttrs(j), slog.Int("attempts", attempt), slog.Duration("duration", logger.Took(start)))...,
			)
			return
		}
		if !d.opts.Retryable(lastErr) || attempt == attempts {
			break
		}

		delay := d.opts.RetryBackoff * time.Duration(attempt)
		logger.Debug(ctx, component, "send.retry",
			append(jobAttrs(j), slog.Int("attempts", attempt), slog.Duration("backoff", delay))...,
		)
		timer := time.NewTimer(delay)
		select {
		case <-deadlineCtx.Done():
			timer.Stop()
			lastErr = errors.Join(lastErr, deadlineCtx.Err())
			break retry
		case <-timer.C:
		}
	}

	d.errs.Add(1)
	logger.Error(ctx, component, "send.fail",
		append(jobAttrs(j),
			slog.String("status", "fail"),
			slog.String("err", netutil.RedactToken(lastErr.Error())),
			slog.String("cause", classifyError(lastErr)),
			slog.Int("attempts", attempts),
			slog.Duration("duration", logger.Took(start)),
		)...,
	)
}

func jobAttrs(j job) []slog.Attr {
	attrs := []slog.Attr{slog.String("action", j.action)}
	if j.endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", j.endpoint))
	}
	return attrs
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return "timeout"
		}
		return "dns"
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return "dial"
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return "timeout"
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return "tls"
	}

	switch status := httpStatusFromError(err); {
	case status == http.StatusTooManyRequests:
		return "flood"
	case status >= 500:
		return "http_5xx"
	case status >= 400:
		return "http_4xx"
	}
	return "unknown"
}

func httpStatusFromError(err error) int {
	var apiErr *tele.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var floodErr tele.FloodError
	if errors.As(err, &floodErr) {
		return http.StatusTooManyRequests
	}
	var groupErr tele.GroupError
	if errors.As(err, &groupErr) {
		return http.StatusBadRequest
	}
	return 0
}
