package dates

import (
	"testing"
	"time"
)

func TestParseAcceptedForms(t *testing.T) {
	want := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, input := range []string{"1.1.2026", "01.01.2026", "1-1-2026", "1/1/2026", " 01.01.2026 "} {
		got, err := Parse(input)
		if err != nil {
			t.Fatalf("Parse(%q): %v", input, err)
		}
		if got == nil || !got.Equal(want) {
			t.Fatalf("Parse(%q) = %v, want %s", input, got, want.Format(ISO))
		}
	}
}

func TestParseEmptyIsNil(t *testing.T) {
	got, err := Parse("  ")
	if err != nil {
		t.Fatalf("Parse(blank): %v", err)
	}
	if got != nil {
		t.Fatalf("Parse(blank) = %v, want nil", got)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	for _, input := range []string{
		"32.1.2026", "1.13.2026", "1.1.1999", "1.1.2101",
		"2026-01-01", "1.1", "junk", "31.4.2026", "29.2.2026",
	} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) should fail", input)
		}
	}
}

func TestValid(t *testing.T) {
	for _, input := range []string{"", "1.1.2026", "01.01.2026", "1-1-2026", "1/1/2026"} {
		if !Valid(input) {
			t.Errorf("Valid(%q) = false, want true", input)
		}
	}
	for _, input := range []string{"32.1.2026", "1.13.2026", "1.1.1999", "x.y.z", "1.1"} {
		if Valid(input) {
			t.Errorf("Valid(%q) = true, want false", input)
		}
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	// Canonical display strings survive the trip through the internal form.
	for _, s := range []string{"01.01.2026", "05.01.2026", "31.12.2099", "29.02.2024"} {
		d, err := Parse(s)
		if err != nil {
			t.Fatalf("Parse(%q): %v", s, err)
		}
		iso := FormatISO(d)
		back, err := ParseISO(iso)
		if err != nil {
			t.Fatalf("ParseISO(%q): %v", iso, err)
		}
		if got := FormatDisplay(&back); got != s {
			t.Errorf("round trip of %q = %q", s, got)
		}
	}
}

func TestFormatNil(t *testing.T) {
	if FormatISO(nil) != "" || FormatDisplay(nil) != "" {
		t.Error("nil dates should format as empty strings")
	}
}
