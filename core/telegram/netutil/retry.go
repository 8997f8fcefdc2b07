// Package netutil classifies network errors raised while talking to the Bot API.
package netutil

import (
	"errors"
	"net"
	"net/url"
	"regexp"
)

var tokenRe = regexp.MustCompile(`bot[0-9]+:[A-Za-z0-9_-]+`)

// ShouldRetry reports whether err is a transient dial or timeout failure.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		return ShouldRetry(urlErr.Err)
	}
	return false
}

// RedactToken hides bot tokens embedded in Bot API URLs.
func RedactToken(msg string) string {
	return tokenRe.ReplaceAllString(msg, "bot<redacted>")
}
