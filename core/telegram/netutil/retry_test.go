package netutil

import (
	"context"
	"errors"
	"net"
	"net/url"
	"testing"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestShouldRetry(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain", errors.New("bad request"), false},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, true},
		{"read reset", &net.OpError{Op: "read", Err: errors.New("connection reset")}, false},
		{"timeout", timeoutErr{}, true},
		{"url wrapped dial", &url.Error{Op: "Post", URL: "https://api.telegram.org", Err: &net.OpError{Op: "dial", Err: errors.New("refused")}}, true},
		{"url wrapped canceled", &url.Error{Op: "Post", URL: "https://api.telegram.org", Err: context.Canceled}, false},
	}
	for _, tc := range cases {
		if got := ShouldRetry(tc.err); got != tc.want {
			t.Errorf("%s: ShouldRetry = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestRedactToken(t *testing.T) {
	in := `Post "https://api.telegram.org/bot123456:AA-bb_CC/sendMessage": dial tcp: refused`
	want := `Post "https://api.telegram.org/bot<redacted>/sendMessage": dial tcp: refused`
	if got := RedactToken(in); got != want {
		t.Fatalf("RedactToken = %q", got)
	}
}
