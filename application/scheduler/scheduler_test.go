package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNextSleep(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		elapsed  time.Duration
		want     time.Duration
	}{
		{"fast cycle", 300 * time.Second, 2 * time.Second, 298 * time.Second},
		{"slow cycle", 300 * time.Second, 298 * time.Second, 5 * time.Second},
		{"overrun", 300 * time.Second, 400 * time.Second, 5 * time.Second},
		{"exact floor", 10 * time.Second, 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextSleep(tt.interval, tt.elapsed, 5*time.Second); got != tt.want {
				t.Errorf("NextSleep = %v, want %v", got, tt.want)
			}
		})
	}
}

// fakeClock продвигается только задачей, чтобы elapsed было детерминированным
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestRunSleepsAndBacksOff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	results := []error{nil, errors.New("boom"), nil}
	calls := 0

	job := func(ctx context.Context) error {
		clock.t = clock.t.Add(2 * time.Second)
		if calls == 1 {
			calls++
			panic("unexpected")
		}
		err := results[calls]
		calls++
		return err
	}

	s := New("test", job, Config{Interval: 300 * time.Second})
	s.now = clock.now

	var sleeps []time.Duration
	s.wait = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		if len(sleeps) == 3 {
			cancel()
			return ctx.Err()
		}
		return nil
	}

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []time.Duration{298 * time.Second, DefaultFailureBackoff, 298 * time.Second}
	if len(sleeps) != len(want) {
		t.Fatalf("sleeps = %v, want %v", sleeps, want)
	}
	for i := range want {
		if sleeps[i] != want[i] {
			t.Errorf("sleep[%d] = %v, want %v", i, sleeps[i], want[i])
		}
	}

	st := s.Status()
	if st.State != StateStopped || st.Runs != 3 || st.Failures != 1 || st.LastErr != "" {
		t.Errorf("status = %+v", st)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	s := New("test", func(ctx context.Context) error {
		called = true
		return nil
	}, Config{Interval: time.Minute})

	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if called {
		t.Error("job must not run after cancellation")
	}
}

func TestRunOnceRecoversPanic(t *testing.T) {
	s := New("test", func(ctx context.Context) error {
		panic("nil map")
	}, Config{Interval: time.Minute})

	err := s.RunOnce(context.Background())
	if err == nil {
		t.Fatal("expected error from panic")
	}
	if st := s.Status(); st.Failures != 1 || st.LastErr == "" || st.State != StateIdle {
		t.Errorf("status = %+v", st)
	}
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sleepContext(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
	if err := sleepContext(context.Background(), time.Millisecond); err != nil {
		t.Errorf("err = %v", err)
	}
}
