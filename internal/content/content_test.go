package content

import (
	"strings"
	"testing"
)

func TestNewSubstitutesLinks(t *testing.T) {
	c := New(Links{
		Privacy:   "https://example.org/privacy",
		Consent:   "https://example.org/consent",
		Offer:     "https://example.org/offer",
		Payment:   "https://pay.example.org/checkout",
		Materials: "https://example.org/materials",
	})

	for _, tc := range []struct {
		name string
		text string
		want []string
	}{
		{"consent", c.Consent, []string{"https://example.org/privacy", "https://example.org/consent"}},
		{"pay", c.Pay, []string{"https://example.org/offer", "https://example.org/privacy"}},
		{"payment link", c.PaymentLink, []string{"https://pay.example.org/checkout", BtnPaid}},
		{"materials", c.Materials, []string{"https://example.org/materials"}},
	} {
		for _, want := range tc.want {
			if !strings.Contains(tc.text, want) {
				t.Errorf("%s text does not contain %q:\n%s", tc.name, want, tc.text)
			}
		}
	}
}

func TestNewDefaultsEmptyLinks(t *testing.T) {
	c := New(Links{Payment: "  "})
	if c.Links.Payment != "#" || c.Links.Privacy != "#" {
		t.Fatalf("Links = %+v, want placeholders", c.Links)
	}
	if !strings.Contains(c.PaymentLink, "Оплата по ссылке: #") {
		t.Fatalf("PaymentLink = %q", c.PaymentLink)
	}
}

func TestProgramLookup(t *testing.T) {
	c := New(Links{})
	programs := c.Programs()
	if len(programs) != 5 {
		t.Fatalf("Programs() = %d entries, want 5", len(programs))
	}
	for _, p := range programs {
		got, ok := c.Program(p.Title)
		if !ok || got.Description == "" {
			t.Fatalf("Program(%q) = %+v, %v", p.Title, got, ok)
		}
	}
	if _, ok := c.Program("Кардиология"); ok {
		t.Fatal("unknown program title resolved")
	}

	programs[0].Title = "mutated"
	if c.Programs()[0].Title == "mutated" {
		t.Fatal("Programs() exposed internal slice")
	}
}

func TestLayouts(t *testing.T) {
	c := New(Links{})
	for _, tc := range []struct {
		menu Menu
		rows int
	}{
		{MenuNone, 0},
		{MenuRemove, 0},
		{MenuConsent, 1},
		{MenuMain, 3},
		{MenuPrograms, 6},
		{MenuPay, 2},
		{MenuPaid, 2},
		{MenuAfterPay, 2},
	} {
		if got := len(c.Layout(tc.menu)); got != tc.rows {
			t.Errorf("Layout(%s) rows = %d, want %d", tc.menu, got, tc.rows)
		}
	}
	rows := c.Layout(MenuPrograms)
	if rows[len(rows)-1][0] != BtnBack {
		t.Fatalf("programs menu must end with %q, got %v", BtnBack, rows[len(rows)-1])
	}
}

func TestAdminNotice(t *testing.T) {
	got := AdminNotice("Анна", "+79991234567", "anna@example.org", "@anna", 123456)
	for _, want := range []string{"Имя: Анна", "Телефон: +79991234567", "Email: anna@example.org", "TG: @anna | id=123456"} {
		if !strings.Contains(got, want) {
			t.Errorf("AdminNotice() missing %q:\n%s", want, got)
		}
	}
}
