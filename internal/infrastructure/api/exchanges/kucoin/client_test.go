package kucoin

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto-engulfing-alert-bot/internal/infrastructure/api"
)

func TestFormatSymbol(t *testing.T) {
	cases := map[string]string{
		"BTCUSDT":  "BTC-USDT",
		"ethbtc":   "ETH-BTC",
		"BTC-USDT": "BTC-USDT",
		"SOL/USDC": "SOL-USDC",
		"XYZ":      "XYZ",
	}
	for in, want := range cases {
		if got := FormatSymbol(in); got != want {
			t.Errorf("FormatSymbol(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFetchCandles(t *testing.T) {
	now := time.Unix(1700010000, 0)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("symbol") != "BTC-USDT" || q.Get("type") != "1hour" {
			t.Errorf("unexpected query %v", q)
		}
		if q.Get("endAt") != "1700010000" || q.Get("startAt") != "1699999200" {
			t.Errorf("unexpected window %s..%s", q.Get("startAt"), q.Get("endAt"))
		}
		// time, open, close, high, low, volume, turnover
		w.Write([]byte(`{"code":"200000","data":[
			["1700003600","88","105","106","87","2","200"],
			["1700000000","100","90","101","89","1","100"]
		]}`))
	}))
	defer srv.Close()

	c := NewKuCoinClient(api.ClientOptions{BaseURL: srv.URL})
	c.now = func() time.Time { return now }

	candles, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if len(candles) != 2 {
		t.Fatalf("got %d candles", len(candles))
	}
	first, second := candles[0], candles[1]
	if first.Open.String() != "100" || first.Close.String() != "90" || first.High.String() != "101" || first.Low.String() != "89" {
		t.Errorf("first candle misparsed: %+v", first)
	}
	if second.Close.String() != "105" {
		t.Errorf("second close = %s", second.Close)
	}
	if !first.Timestamp.Before(second.Timestamp) {
		t.Error("candles not in ascending order")
	}
}

func TestFetchCandlesProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"400100","msg":"This pair is not provided at present"}`))
	}))
	defer srv.Close()

	c := NewKuCoinClient(api.ClientOptions{BaseURL: srv.URL})
	_, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	if !errors.Is(err, api.ErrProvider) {
		t.Fatalf("err = %v, want provider error", err)
	}
}
