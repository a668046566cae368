package pdf

import "testing"

func TestFormatNOK(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0,00 kr"},
		{950, "950,00 kr"},
		{1234.5, "1 234,50 kr"},
		{1234567.89, "1 234 567,89 kr"},
		{-450.25, "-450,25 kr"},
	}

	for _, c := range cases {
		if got := formatNOK(c.in); got != c.want {
			t.Errorf("formatNOK(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4, "4"},
		{2.5, "2,5"},
		{0.25, "0,25"},
	}

	for _, c := range cases {
		if got := formatQuantity(c.in); got != c.want {
			t.Errorf("formatQuantity(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(25); got != "25" {
		t.Errorf("formatPercent(25) = %q, want 25", got)
	}
	if got := formatPercent(12.5); got != "12,5" {
		t.Errorf("formatPercent(12.5) = %q, want 12,5", got)
	}
}

func TestTranslateStatus(t *testing.T) {
	cases := map[string]string{
		"draft":    "Utkast",
		"sent":     "Sendt",
		"accepted": "Akseptert",
		"rejected": "Avslått",
		"weird":    "weird",
	}
	for in, want := range cases {
		if got := translateStatus(in); got != want {
			t.Errorf("translateStatus(%q) = %q, want %q", in, got, want)
		}
	}
}
