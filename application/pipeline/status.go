// application/pipeline/status.go
package pipeline

import (
	"sync"
	"time"

	"crypto-engulfing-alert-bot/internal/core/domain/signals"
)

// Статусы сервиса
const (
	StatusStarting = "starting"
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Status - снапшот для эндпоинта /health
type Status struct {
	Status       string          `json:"status"`
	Symbol       string          `json:"symbol"`
	Interval     string          `json:"interval"`
	LastCheck    *time.Time      `json:"last_check"`
	LastSignal   signals.Signal  `json:"last_signal"`
	LastDetected signals.Signal  `json:"last_detected"`
	LastTrend    string          `json:"last_trend"`
	LastProvider string          `json:"last_provider"`
	LastPrice    string          `json:"last_price"`
	LastError    string          `json:"last_error,omitempty"`
	Cycles       int64           `json:"cycles"`
	Failures     int64           `json:"failures"`
	AlertsSent   int64           `json:"alerts_sent"`
	StartedAt    time.Time       `json:"started_at"`
	Channels     []string        `json:"channels"`
	Storages     map[string]bool `json:"storages,omitempty"`
}

// Tracker хранит состояние последних циклов; читается HTTP-сервером
type Tracker struct {
	mu       sync.RWMutex
	status   Status
	dedup    *signals.DedupState
	lastFail bool
}

// NewTracker создает трекер статуса
func NewTracker(symbol, interval string, channels []string, dedup *signals.DedupState) *Tracker {
	return &Tracker{
		dedup: dedup,
		status: Status{
			Status:     StatusStarting,
			Symbol:     symbol,
			Interval:   interval,
			LastSignal: signals.None,
			StartedAt:  time.Now().UTC(),
			Channels:   channels,
		},
	}
}

// RecordCycle фиксирует успешно выполненный цикл
func (t *Tracker) RecordCycle(res CycleResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	checked := res.StartedAt.UTC()
	t.status.LastCheck = &checked
	t.status.Cycles++
	t.status.LastDetected = res.Signal
	t.status.LastTrend = string(res.Trend)
	t.status.LastProvider = res.Provider
	t.status.LastPrice = res.Price.String()
	t.status.LastError = ""
	t.status.Status = StatusOK
	t.lastFail = false
	if res.Dispatched {
		t.status.AlertsSent++
	}
}

// RecordFailure фиксирует неудачный цикл
func (t *Tracker) RecordFailure(at time.Time, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	checked := at.UTC()
	t.status.LastCheck = &checked
	t.status.Cycles++
	t.status.Failures++
	if err != nil {
		t.status.LastError = err.Error()
	}
	t.status.Status = StatusDegraded
	t.lastFail = true
}

// SetStorages - состояние хранилищ журнала
func (t *Tracker) SetStorages(storages map[string]bool) {
	t.mu.Lock()
	t.status.Storages = storages
	t.mu.Unlock()
}

// Snapshot возвращает копию статуса
func (t *Tracker) Snapshot() Status {
	t.mu.RLock()
	s := t.status
	s.Channels = append([]string(nil), t.status.Channels...)
	if t.status.LastCheck != nil {
		checked := *t.status.LastCheck
		s.LastCheck = &checked
	}
	if t.status.Storages != nil {
		s.Storages = make(map[string]bool, len(t.status.Storages))
		for k, v := range t.status.Storages {
			s.Storages[k] = v
		}
	}
	t.mu.RUnlock()

	if t.dedup != nil {
		s.LastSignal = t.dedup.Last()
	}
	return s
}

// Healthy - последний цикл прошел без ошибок
func (t *Tracker) Healthy() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return !t.lastFail
}
