package bybit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"crypto-engulfing-alert-bot/internal/infrastructure/api"
)

func newTestClient(t *testing.T, body string) *BybitClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/v5/market/kline" || q.Get("category") != "spot" || q.Get("interval") != "60" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewBybitClient(api.ClientOptions{BaseURL: srv.URL})
}

func TestFetchCandlesNewestFirst(t *testing.T) {
	body := `{"retCode":0,"retMsg":"OK","result":{"category":"spot","symbol":"BTCUSDT","list":[
		["1700007200000","105","107","104","106","3","300"],
		["1700003600000","88","106","87","105","2","200"],
		["1700000000000","100","101","89","90","1","100"]
	]}}`
	c := newTestClient(t, body)

	candles, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 3)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	want := []string{"90", "105", "106"}
	for i, w := range want {
		if candles[i].Close.String() != w {
			t.Fatalf("candles[%d].Close = %s, want %s", i, candles[i].Close, w)
		}
	}
}

func TestFetchCandlesNamedFields(t *testing.T) {
	body := `{"retCode":0,"retMsg":"OK","result":{"list":[
		{"startTime":"1700003600000","open":"88","high":"106","low":"87","close":"105","volume":"2"},
		{"startTime":"1700000000000","open":"100","high":"101","low":"89","close":"90"}
	]}}`
	c := newTestClient(t, body)

	candles, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	if err != nil {
		t.Fatalf("FetchCandles: %v", err)
	}
	if candles[0].Close.String() != "90" || candles[1].Volume.String() != "2" {
		t.Errorf("unexpected candles %+v", candles)
	}
}

func TestFetchCandlesLimitTruncates(t *testing.T) {
	body := `{"retCode":0,"result":{"list":[
		["1700007200000","105","107","104","106","3"],
		["1700003600000","88","106","87","105","2"],
		["1700000000000","100","101","89","90","1"]
	]}}`
	c := newTestClient(t, body)

	candles, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(candles) != 2 || candles[1].Close.String() != "106" {
		t.Errorf("expected newest two candles, got %d", len(candles))
	}
}

func TestFetchCandlesProviderError(t *testing.T) {
	c := newTestClient(t, `{"retCode":10001,"retMsg":"params error: symbol invalid","result":{}}`)

	_, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2)
	if !errors.Is(err, api.ErrProvider) {
		t.Fatalf("err = %v, want provider error", err)
	}

	var fe *api.FetchError
	if !errors.As(err, &fe) || fe.Message != "10001: params error: symbol invalid" {
		t.Errorf("provider message not attached: %v", err)
	}
}

func TestFetchCandlesMissingList(t *testing.T) {
	c := newTestClient(t, `{"retCode":0,"result":{}}`)
	if _, err := c.FetchCandles(context.Background(), "BTCUSDT", "1h", 2); !errors.Is(err, api.ErrParse) {
		t.Fatalf("err = %v, want parse error", err)
	}
}
