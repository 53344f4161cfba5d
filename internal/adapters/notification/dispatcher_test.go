package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"

	"crypto-engulfing-alert-bot/internal/core/domain/analysis"
	"crypto-engulfing-alert-bot/internal/core/domain/signals"
	"crypto-engulfing-alert-bot/internal/delivery/fcm"
	"crypto-engulfing-alert-bot/internal/delivery/telegram/app/http_client"
)

type stubNotifier struct {
	name string
	err  error
	sent []signals.Alert
}

func (s *stubNotifier) Name() string { return s.name }

func (s *stubNotifier) Send(ctx context.Context, alert signals.Alert) error {
	s.sent = append(s.sent, alert)
	return s.err
}

type stubPublisher struct {
	messages []interface{}
	err      error
}

func (p *stubPublisher) PublishJSON(v interface{}) error {
	p.messages = append(p.messages, v)
	return p.err
}

func testAlert() signals.Alert {
	return signals.Alert{
		ID:         "a-1",
		Symbol:     "BTCUSDT",
		Interval:   "1h",
		Signal:     signals.Bearish,
		Trend:      analysis.TrendDown,
		Price:      decimal.NewFromInt(42000),
		Source:     "binance",
		CandleTime: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDispatchAnyChannelSucceeds(t *testing.T) {
	failing := &stubNotifier{name: "broken", err: errors.New("boom")}
	working := &stubNotifier{name: "ok"}

	d := NewDispatcher(failing, working)
	if !d.Dispatch(context.Background(), testAlert()) {
		t.Fatal("dispatch must succeed when one channel accepts")
	}
	if len(working.sent) != 1 || len(failing.sent) != 1 {
		t.Errorf("sent: working=%d failing=%d", len(working.sent), len(failing.sent))
	}
	if working.sent[0].Text == "" || working.sent[0].Title == "" {
		t.Error("alert was not formatted before sending")
	}

	stats := d.Stats()
	if stats.Dispatched != 1 || stats.Failed != 1 || !strings.Contains(stats.LastError, "broken") {
		t.Errorf("stats = %+v", stats)
	}
}

func TestDispatchAllChannelsFail(t *testing.T) {
	d := NewDispatcher(&stubNotifier{name: "a", err: errors.New("x")}, &stubNotifier{name: "b", err: errors.New("y")})
	if d.Dispatch(context.Background(), testAlert()) {
		t.Fatal("dispatch must fail when every channel fails")
	}
}

func TestDispatchNoChannels(t *testing.T) {
	if NewDispatcher().Dispatch(context.Background(), testAlert()) {
		t.Fatal("dispatch without channels must fail")
	}
}

func TestTelegramNotifierNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier(http_client.NewTelegramClient(srv.URL, "token", time.Second), "42")
	d := NewDispatcher(n)
	if d.Dispatch(context.Background(), testAlert()) {
		t.Fatal("non-200 reply must be a failed dispatch")
	}
}

func TestTelegramNotifierSendsMarkdown(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	n := NewTelegramNotifier(http_client.NewTelegramClient(srv.URL, "token", time.Second), "42")
	if !NewDispatcher(n).Dispatch(context.Background(), testAlert()) {
		t.Fatal("dispatch failed")
	}
	if payload["chat_id"] != "42" || payload["parse_mode"] != "Markdown" {
		t.Errorf("payload = %v", payload)
	}
	if !strings.Contains(payload["text"], "МЕДВЕЖЬЕ ПОГЛОЩЕНИЕ") {
		t.Errorf("text = %s", payload["text"])
	}
}

func TestFCMNotifierUsesPlainBody(t *testing.T) {
	var body struct {
		Message struct {
			Topic        string `json:"topic"`
			Notification struct {
				Title string `json:"title"`
				Body  string `json:"body"`
			} `json:"notification"`
		} `json:"message"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&body)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "t"})
	n := NewFCMNotifier(fcm.NewClient(tokens, "proj", srv.URL, time.Second), "all", "Alerta Crypto")
	if !NewDispatcher(n).Dispatch(context.Background(), testAlert()) {
		t.Fatal("dispatch failed")
	}
	if body.Message.Topic != "all" || body.Message.Notification.Title != "Alerta Crypto" {
		t.Errorf("body = %+v", body)
	}
	if strings.Contains(body.Message.Notification.Body, "*") {
		t.Errorf("push body has markdown: %s", body.Message.Notification.Body)
	}
}

func TestNATSNotifier(t *testing.T) {
	pub := &stubPublisher{}
	n := NewNATSNotifier(pub)
	if err := n.Send(context.Background(), testAlert()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(pub.messages) != 1 {
		t.Fatalf("published %d messages", len(pub.messages))
	}
	if a, ok := pub.messages[0].(signals.Alert); !ok || a.ID != "a-1" {
		t.Errorf("message = %#v", pub.messages[0])
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Send(ctx, testAlert()); err == nil {
		t.Error("expected error on cancelled context")
	}
}

func TestStartupMessage(t *testing.T) {
	stub := &stubNotifier{name: "stub"}
	if !NewDispatcher(stub).SendStartupMessage(context.Background(), "ETHUSDT", "4h", "1.0.0") {
		t.Fatal("startup message not sent")
	}
	if !strings.Contains(stub.sent[0].Text, "Бот запущен") || !strings.Contains(stub.sent[0].Text, "4 часа") {
		t.Errorf("text = %s", stub.sent[0].Text)
	}
}
