// Package validate checks the raw answers of the intake questions.
// Every function is total: any input yields a Result, nothing panics.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rejection reasons reported in Result.Reason.
const (
	ReasonNameTooShort = "name too short"
	ReasonInvalidPhone = "invalid phone format"
	ReasonInvalidEmail = "invalid email format"
)

const minNameRunes = 2

// space matches Unicode whitespace; RE2's \s alone covers ASCII only.
const space = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	phoneRe = regexp.MustCompile(`^\+?\d[\d` + space + `\-()]{7,}$`)
	emailRe = regexp.MustCompile(`^[^@` + space + `]+@[^@` + space + `]+\.[^@` + space + `]+$`)
)

// Result is the outcome of checking one field.
type Result struct {
	Accepted bool
	// Value is the normalised input; set only when Accepted.
	Value string
	// Reason explains a rejection; empty when Accepted.
	Reason string
}

func accept(v string) Result { return Result{Accepted: true, Value: v} }

func reject(reason string) Result { return Result{Reason: reason} }

// Name accepts any trimmed text of at least two characters.
func Name(raw string) Result {
	name := strings.TrimSpace(raw)
	if utf8.RuneCountInString(name) < minNameRunes {
		return reject(ReasonNameTooShort)
	}
	return accept(name)
}

// Phone accepts an optional leading "+", a digit, and seven or more digits,
// spaces (including non-breaking ones), hyphens or parentheses. The accepted value keeps only digits and the leading "+".
func Phone(raw string) Result {
	phone := strings.TrimSpace(raw)
	if !phoneRe.MatchString(phone) {
		return reject(ReasonInvalidPhone)
	}
	return accept(NormalizePhone(phone))
}

// NormalizePhone strips everything except digits and a single leading "+".
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Email accepts local@domain.tld where neither side holds "@" or whitespace
// and every dot-separated label of the domain is non-empty.
func Email(raw string) Result {
	email := strings.TrimSpace(raw)
	if !emailRe.MatchString(email) {
		return reject(ReasonInvalidEmail)
	}
	domain := email[strings.IndexByte(email, '@')+1:]
	for _, label := range strings.Split(domain, ".") {
		if label == "" {
			return reject(ReasonInvalidEmail)
		}
	}
	return accept(email)
}
