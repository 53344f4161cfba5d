package formatters

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"crypto-engulfing-alert-bot/internal/core/domain/analysis"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

func TestFormatAlert(t *testing.T) {
	alert := signals.Alert{
		Symbol:     "BTCUSDT",
		Interval:   "1h",
		Signal:     signals.Bullish,
		Trend:      analysis.TrendUp,
		Price:      decimal.RequireFromString("43250.5"),
		Source:     "bybit@api.bytick.com",
		CandleTime: time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC),
	}

	text := NewSignalFormatter().FormatAlert(alert)
	for _, want := range []string{
		"🟢 *БЫЧЬЕ ПОГЛОЩЕНИЕ*",
		"*BTCUSDT*",
		"`43250.50`",
		"восходящий",
		"bybit@api.bytick.com",
		"2024-01-02 15:00 UTC",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("message does not contain %q:\n%s", want, text)
		}
	}

	plain := PlainText(text)
	if strings.ContainsAny(plain, "*`") {
		t.Errorf("plain text still has markup: %s", plain)
	}
}

func TestFormatDecimal(t *testing.T) {
	f := NewNumberFormatter()
	tests := map[string]string{
		"43250.5":    "43250.50",
		"1.23456789": "1.2346",
		"0.00001234": "0.00001234",
		"0":          "0",
	}
	for in, want := range tests {
		if got := f.FormatDecimal(decimal.RequireFromString(in)); got != want {
			t.Errorf("FormatDecimal(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestEscapeMarkdown(t *testing.T) {
	if got := EscapeMarkdown("BTC_USDT"); got != "BTC\\_USDT" {
		t.Errorf("EscapeMarkdown = %s", got)
	}
	if got := PlainText(EscapeMarkdown("BTC_USDT")); got != "BTC_USDT" {
		t.Errorf("round trip = %s", got)
	}
}
