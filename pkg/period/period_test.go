package period

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1h", "1h", true},
		{" 1H ", "1h", true},
		{"60m", "1h", true},
		{"240m", "4h", true},
		{"1d", "1d", true},
		{"1w", "1w", true},
		{"7m", "", false},
		{"1M", "", false},
		{"60M", "", false},
		{"hour", "", false},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.in)
		if (err == nil) != tt.ok {
			t.Fatalf("Normalize(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
		}
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStringToDuration(t *testing.T) {
	d, err := StringToDuration("4h")
	if err != nil {
		t.Fatal(err)
	}
	if d != 4*time.Hour {
		t.Errorf("got %v, want 4h", d)
	}

	if _, err := StringToDuration("bogus"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestFormatPeriodForDisplay(t *testing.T) {
	cases := map[string]string{
		"1m":  "1 минута",
		"15m": "15 минут",
		"1h":  "1 час",
		"4h":  "4 часа",
		"12h": "12 часов",
		"1d":  "1 день",
		"1w":  "1 неделя",
	}
	for in, want := range cases {
		if got := FormatPeriodForDisplay(in); got != want {
			t.Errorf("FormatPeriodForDisplay(%q) = %q, want %q", in, got, want)
		}
	}
}
