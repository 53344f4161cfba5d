// application/scheduler/scheduler.go
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"crypto-engulfing-alert-bot/pkg/logger"
)

// Значения по умолчанию
const (
	DefaultMinSleep       = 5 * time.Second
	DefaultFailureBackoff = 60 * time.Second
)

// ErrAlreadyRunning - повторный вызов Run
var ErrAlreadyRunning = errors.New("scheduler already running")

// State - состояние планировщика
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateStopped State = "stopped"
)

// Job - один цикл опроса
type Job func(ctx context.Context) error

// Config - параметры опроса
type Config struct {
	Interval       time.Duration
	MinSleep       time.Duration
	FailureBackoff time.Duration
}

// Status - снапшот состояния планировщика
type Status struct {
	State     State     `json:"state"`
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRun   time.Time `json:"last_run"`
	LastSleep string    `json:"last_sleep"`
	LastErr   string    `json:"last_error,omitempty"`
}

// PollingScheduler выполняет задачу строго последовательно:
// цикл -> пауза -> цикл. Пауза учитывает время выполнения цикла.
type PollingScheduler struct {
	name string
	job  Job
	cfg  Config

	// wait ждет d или отмены контекста; подменяется в тестах
	wait func(ctx context.Context, d time.Duration) error
	now  func() time.Time

	mu        sync.Mutex
	state     State
	runs      int
	failures  int
	lastRun   time.Time
	lastSleep time.Duration
	lastErr   error
}

// New создает планировщик
func New(name string, job Job, cfg Config) *PollingScheduler {
	if cfg.MinSleep <= 0 {
		cfg.MinSleep = DefaultMinSleep
	}
	if cfg.FailureBackoff <= 0 {
		cfg.FailureBackoff = DefaultFailureBackoff
	}
	return &PollingScheduler{
		name:  name,
		job:   job,
		cfg:   cfg,
		wait:  sleepContext,
		now:   time.Now,
		state: StateIdle,
	}
}

// NextSleep вычисляет паузу после успешного цикла
func NextSleep(interval, elapsed, minSleep time.Duration) time.Duration {
	sleep := interval - elapsed
	if sleep < minSleep {
		return minSleep
	}
	return sleep
}

// Run крутит цикл до отмены контекста
func (s *PollingScheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateRunning {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.state = StateRunning
	s.mu.Unlock()

	defer s.setState(StateStopped)

	logger.Info("✅ [Scheduler] %s запущен: интервал %v, мин. пауза %v, пауза после ошибки %v",
		s.name, s.cfg.Interval, s.cfg.MinSleep, s.cfg.FailureBackoff)

	for {
		if err := ctx.Err(); err != nil {
			logger.Info("🛑 [Scheduler] %s остановлен", s.name)
			return nil
		}

		start := s.now()
		err := s.RunOnce(ctx)
		elapsed := s.now().Sub(start)

		var sleep time.Duration
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("🛑 [Scheduler] %s остановлен", s.name)
				return nil
			}
			sleep = s.cfg.FailureBackoff
			logger.Error("❌ [Scheduler] %s: цикл завершился с ошибкой за %v: %v. Повтор через %v",
				s.name, elapsed, err, sleep)
		} else {
			sleep = NextSleep(s.cfg.Interval, elapsed, s.cfg.MinSleep)
			logger.Debug("✅ [Scheduler] %s: цикл выполнен за %v. Следующий через %v", s.name, elapsed, sleep)
		}

		s.mu.Lock()
		s.lastSleep = sleep
		s.mu.Unlock()

		if err := s.wait(ctx, sleep); err != nil {
			logger.Info("🛑 [Scheduler] %s остановлен", s.name)
			return nil
		}
	}
}

// RunOnce выполняет один цикл; паника задачи превращается в ошибку
func (s *PollingScheduler) RunOnce(ctx context.Context) (err error) {
	start := s.now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", s.name, r)
		}

		s.mu.Lock()
		s.runs++
		s.lastRun = start
		s.lastErr = err
		if err != nil {
			s.failures++
		}
		s.mu.Unlock()
	}()

	return s.job(ctx)
}

// Status возвращает состояние
func (s *PollingScheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{
		State:     s.state,
		Runs:      s.runs,
		Failures:  s.failures,
		LastRun:   s.lastRun,
		LastSleep: s.lastSleep.String(),
	}
	if s.lastErr != nil {
		st.LastErr = s.lastErr.Error()
	}
	return st
}

func (s *PollingScheduler) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
