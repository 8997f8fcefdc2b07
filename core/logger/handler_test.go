package logger

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func newTestLogger(format logFormat) (*slog.Logger, *asyncWriter, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	aw := newAsyncWriter([]io.Writer{buf}, 1024)
	handler := newStructuredHandler(handlerConfig{
		level:    slog.LevelInfo,
		writer:   aw,
		format:   format,
		keyOrder: append([]string(nil), defaultKeyOrder...),
	})
	return slog.New(handler), aw, buf
}

func drain(t *testing.T, aw *asyncWriter, buf *bytes.Buffer) string {
	t.Helper()
	if err := aw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := aw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return strings.TrimSpace(buf.String())
}

func TestStructuredHandlerKVOrder(t *testing.T) {
	log, aw, buf := newTestLogger(formatKV)
	ctx := WithRID(context.Background(), "rid-123")
	ctx = WithUpdateMeta(ctx, 42, 7, 9)

	LogEvent(ctx, log.With("component", "dialog"), slog.LevelInfo, "dialog.step",
		slog.String("status", "OK"),
		slog.String("state", "ask_name"),
		slog.String("rule", "name.accept"),
	)

	line := drain(t, aw, buf)
	tokens := strings.Split(line, " ")
	expected := []string{"ts=", "level=INFO", "component=dialog", "event=dialog.step", "status=ok", "rid=rid-123", "update_id=42", "user_id=7", "chat_id=9", "state=ask_name", "rule=name.accept"}
	if len(tokens) < len(expected) {
		t.Fatalf("unexpected token count: %d (%s)", len(tokens), line)
	}
	for i, prefix := range expected {
		if !strings.HasPrefix(tokens[i], prefix) {
			t.Fatalf("token %d = %s, expected prefix %s", i, tokens[i], prefix)
		}
	}
}

func TestStructuredHandlerJSONOrder(t *testing.T) {
	log, aw, buf := newTestLogger(formatJSON)
	ctx := WithRID(context.Background(), "rid-json")

	LogEvent(ctx, log.With("component", "notify"), slog.LevelError, "notify.failed",
		slog.String("status", "fail"),
		slog.String("sink", "telegram"),
		slog.Any("err", errors.New("boom")),
	)

	line := drain(t, aw, buf)
	prefixes := []string{`{"ts":`, `"level":"ERROR"`, `"component":"notify"`, `"event":"notify.failed"`, `"status":"fail"`, `"rid":"rid-json"`, `"sink":"telegram"`, `"err":"boom"`}
	pos := -1
	for _, pref := range prefixes {
		idx := strings.Index(line, pref)
		if idx == -1 || idx < pos {
			t.Fatalf("prefix %s not found in order within %s", pref, line)
		}
		pos = idx
	}
}

func TestStructuredHandlerCompactRID(t *testing.T) {
	for _, tc := range []struct {
		format   logFormat
		want     string
		wantFull bool
	}{
		{formatKV, "rid=" + CompactRID("123:456:789"), false},
		{formatJSON, `"rid":"` + CompactRID("123:456:789") + `"`, true},
	} {
		log, aw, buf := newTestLogger(tc.format)
		ctx := WithRID(context.Background(), "123:456:789")
		LogEvent(ctx, log, slog.LevelInfo, "rid.test")
		line := drain(t, aw, buf)
		if !strings.Contains(line, tc.want) {
			t.Fatalf("%s: expected %s in %s", tc.format, tc.want, line)
		}
		if got := strings.Contains(line, "rid_full"); got != tc.wantFull {
			t.Fatalf("%s: rid_full present = %v in %s", tc.format, got, line)
		}
	}
}

func TestStructuredHandlerDefaultsAndDurations(t *testing.T) {
	log, aw, buf := newTestLogger(formatKV)
	log.Info("plain message",
		slog.Duration("duration", 1500*time.Microsecond),
		slog.Duration("backoff", 2*time.Second),
		slog.String("empty", " "),
	)
	log.Debug("dropped")

	line := drain(t, aw, buf)
	for _, want := range []string{"component=app", `event="plain message"`, "duration_ms=2", "backoff_ms=2000"} {
		if !strings.Contains(line, want) {
			t.Errorf("missing %s in %s", want, line)
		}
	}
	if strings.Contains(line, "empty=") || strings.Contains(line, "dropped") {
		t.Errorf("unexpected content in %s", line)
	}
}

func TestCompactRID(t *testing.T) {
	cases := map[string]string{
		"35:36:0":   "z.10.0",
		"1:-100:2":  "1.-2s.2",
		"not-a-rid": "not-a-rid",
		"1:x:2":     "1:x:2",
	}
	for in, want := range cases {
		if got := CompactRID(in); got != want {
			t.Errorf("CompactRID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeLimit(t *testing.T) {
	if got := SanitizeLimit("при\u200bвет\x07\n", 10); got != "привет\n" {
		t.Fatalf("SanitizeLimit = %q", got)
	}
	if got := SanitizeLimit("abcdef", 3); got != "abc" {
		t.Fatalf("SanitizeLimit truncation = %q", got)
	}
}

func TestRatioSampler(t *testing.T) {
	s := newRatioSampler(1, 3)
	var allowed int
	for i := 0; i < 9; i++ {
		if s.Allow() {
			allowed++
		}
	}
	if allowed != 3 {
		t.Fatalf("allowed = %d, want 3", allowed)
	}

	s.Set(0, 0)
	if !s.Allow() {
		t.Fatal("disabled sampler must allow everything")
	}

	if num, den := parseRatioSpec("2/10"); num != 2 || den != 10 {
		t.Fatalf("parseRatioSpec(2/10) = %d/%d", num, den)
	}
	if num, den := parseRatioSpec("20"); num != 1 || den != 20 {
		t.Fatalf("parseRatioSpec(20) = %d/%d", num, den)
	}
}

func TestPackageLoggersUsableBeforeInit(t *testing.T) {
	for name, l := range map[string]*slog.Logger{"L": L, "DB": DB, "TG": TG, "Dialog": Dialog, "Notify": Notify, "Journal": Journal} {
		if l == nil {
			t.Fatalf("%s is nil", name)
		}
	}
	if Component("x") == nil || FromContext(context.Background()) == nil {
		t.Fatal("component lookup returned nil")
	}
}
