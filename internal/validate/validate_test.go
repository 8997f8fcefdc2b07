package validate

import "testing"

func TestPhone(t *testing.T) {
	for _, tc := range []struct {
		in     string
		ok     bool
		want   string
		reason string
	}{
		{"+7 999 123-45-67", true, "+79991234567", ""},
		{"8 (999) 123-45-67", true, "89991234567", ""},
		{"  +79991234567  ", true, "+79991234567", ""},
		{"79991234", true, "79991234", ""},
		{"+7\u00a0999\u00a0123-45-67", true, "+79991234567", ""},
		{"8\u2009999\u2009123\u202f45\u202f67", true, "89991234567", ""},
		{"abc", false, "", ReasonInvalidPhone},
		{"12345", false, "", ReasonInvalidPhone},
		{"+7 999", false, "", ReasonInvalidPhone},
		{"++79991234567", false, "", ReasonInvalidPhone},
		{"+7 999 123 45 67 ext", false, "", ReasonInvalidPhone},
		{"", false, "", ReasonInvalidPhone},
	} {
		got := Phone(tc.in)
		if got.Accepted != tc.ok || got.Value != tc.want || got.Reason != tc.reason {
			t.Errorf("Phone(%q) = %+v, want accepted=%v value=%q reason=%q", tc.in, got, tc.ok, tc.want, tc.reason)
		}
	}
}

func TestNormalizePhoneKeepsOnlyLeadingPlus(t *testing.T) {
	if got := NormalizePhone("+7 (999) +123"); got != "+7999123" {
		t.Fatalf("NormalizePhone() = %q, want %q", got, "+7999123")
	}
}

func TestEmail(t *testing.T) {
	for _, tc := range []struct {
		in string
		ok bool
	}{
		{"name@gmail.com", true},
		{"  first.last@mail.example.ru ", true},
		{"name@gmail", false},
		{"name@@gmail.com", false},
		{"na me@gmail.com", false},
		{"anna\u00a0k@mail.ru", false},
		{"anna@mail\u2003.ru", false},
		{"anna@mail.r\u3000u", false},
		{"name@gmail..com", false},
		{"name@.gmail.com", false},
		{"name@gmail.com.", false},
		{"@gmail.com", false},
		{"", false},
	} {
		got := Email(tc.in)
		if got.Accepted != tc.ok {
			t.Errorf("Email(%q) accepted = %v, want %v", tc.in, got.Accepted, tc.ok)
		}
		if !got.Accepted && got.Reason != ReasonInvalidEmail {
			t.Errorf("Email(%q) reason = %q", tc.in, got.Reason)
		}
	}
	if got := Email(" name@gmail.com "); got.Value != "name@gmail.com" {
		t.Fatalf("Email() value = %q, want trimmed", got.Value)
	}
}

func TestName(t *testing.T) {
	for _, tc := range []struct {
		in   string
		ok   bool
		want string
	}{
		{"Анна", true, "Анна"},
		{"  Ян ", true, "Ян"},
		{"Я", false, ""},
		{"   ", false, ""},
		{"", false, ""},
	} {
		got := Name(tc.in)
		if got.Accepted != tc.ok || got.Value != tc.want {
			t.Errorf("Name(%q) = %+v, want accepted=%v value=%q", tc.in, got, tc.ok, tc.want)
		}
		if !tc.ok && got.Reason != ReasonNameTooShort {
			t.Errorf("Name(%q) reason = %q", tc.in, got.Reason)
		}
	}
}
