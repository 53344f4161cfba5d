package utils

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{42 * time.Second, "42с"},
		{5 * time.Minute, "5м"},
		{4*time.Hour + 30*time.Minute, "4ч 30м"},
		{26 * time.Hour, "26ч 0м"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCandleTime(t *testing.T) {
	msk := time.FixedZone("MSK", 3*3600)
	at := time.Date(2024, 3, 1, 15, 4, 0, 0, msk)
	if got := FormatCandleTime(at); got != "2024-03-01 12:04" {
		t.Errorf("FormatCandleTime = %q", got)
	}
}
