package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error { return m.err }

func countingJob(name string, interval time.Duration, calls *atomic.Int32) Job {
	return Job{
		Name:     name,
		Interval: interval,
		Run: func(ctx context.Context) error {
			calls.Add(1)
			return nil
		},
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNewWorker(t *testing.T) {
	var calls atomic.Int32
	w, err := NewWorker(WorkerConfig{
		Jobs:       []Job{countingJob("rebuild", time.Minute, &calls)},
		JobTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.timeout != time.Second {
		t.Errorf("expected timeout 1s, got %v", w.timeout)
	}
	if len(w.status) != 1 {
		t.Errorf("expected 1 job status, got %d", len(w.status))
	}
}

func TestNewWorker_Defaults(t *testing.T) {
	w, err := NewWorker(WorkerConfig{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.timeout != 5*time.Minute {
		t.Errorf("expected default timeout 5m, got %v", w.timeout)
	}
	if w.logger == nil {
		t.Error("expected default logger")
	}
}

func TestNewWorker_InvalidJobs(t *testing.T) {
	run := func(ctx context.Context) error { return nil }
	tests := []struct {
		name string
		jobs []Job
	}{
		{"missing name", []Job{{Interval: time.Second, Run: run}}},
		{"zero interval", []Job{{Name: "a", Run: run}}},
		{"missing run", []Job{{Name: "a", Interval: time.Second}}},
		{"duplicate", []Job{
			{Name: "a", Interval: time.Second, Run: run},
			{Name: "a", Interval: time.Minute, Run: run},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewWorker(WorkerConfig{Jobs: tt.jobs}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestWorker_StartStop(t *testing.T) {
	var calls atomic.Int32
	w, _ := NewWorker(WorkerConfig{
		Jobs: []Job{countingJob("tick", 10*time.Millisecond, &calls)},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("failed to start worker: %v", err)
	}
	if !w.Health(ctx).Running {
		t.Error("expected worker to be running")
	}

	// Start again should be no-op
	if err := w.Start(ctx); err != nil {
		t.Errorf("second start should not error: %v", err)
	}

	waitFor(t, func() bool { return calls.Load() >= 2 })

	w.Stop()
	if w.Health(ctx).Running {
		t.Error("expected worker to be stopped")
	}

	after := calls.Load()
	time.Sleep(40 * time.Millisecond)
	if calls.Load() != after {
		t.Error("job kept running after stop")
	}

	// Stop again should be no-op
	w.Stop()
}

func TestWorker_RunOnStart(t *testing.T) {
	var calls atomic.Int32
	job := countingJob("startup", time.Hour, &calls)
	job.RunOnStart = true

	w, _ := NewWorker(WorkerConfig{Jobs: []Job{job}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_ = w.Start(ctx)
	waitFor(t, func() bool { return calls.Load() == 1 })
	w.Stop()
}

func TestWorker_ContextCancellation(t *testing.T) {
	var calls atomic.Int32
	w, _ := NewWorker(WorkerConfig{
		Jobs: []Job{countingJob("tick", time.Hour, &calls)},
	})

	ctx, cancel := context.WithCancel(context.Background())
	_ = w.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}
}

func TestWorker_WaitBeforeStart(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{})
	w.Wait() // must not block
}

func TestWorker_RunNow(t *testing.T) {
	var calls atomic.Int32
	w, _ := NewWorker(WorkerConfig{
		Jobs: []Job{countingJob("rebuild", time.Hour, &calls)},
	})

	if err := w.RunNow(context.Background(), "rebuild"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
	if err := w.RunNow(context.Background(), "missing"); err == nil {
		t.Error("expected error for unknown job")
	}
}

func TestWorker_RecordsFailures(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{
		Jobs: []Job{{
			Name:     "broken",
			Interval: time.Hour,
			Run:      func(ctx context.Context) error { return errors.New("store down") },
		}},
	})

	err := w.RunNow(context.Background(), "broken")
	if err == nil || err.Error() != "store down" {
		t.Fatalf("expected store down error, got %v", err)
	}

	health := w.Health(context.Background())
	if len(health.Jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(health.Jobs))
	}
	st := health.Jobs[0]
	if st.Runs != 1 || st.Failures != 1 || st.LastError != "store down" {
		t.Errorf("unexpected status %+v", st)
	}
	if st.LastRun.IsZero() {
		t.Error("expected last run to be set")
	}
}

func TestWorker_RecoversPanic(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{
		Jobs: []Job{{
			Name:     "panics",
			Interval: time.Hour,
			Run:      func(ctx context.Context) error { panic("boom") },
		}},
	})

	err := w.RunNow(context.Background(), "panics")
	if err == nil {
		t.Fatal("expected error from panicking job")
	}
	if got := w.Health(context.Background()).Jobs[0].Failures; got != 1 {
		t.Errorf("expected 1 failure, got %d", got)
	}
}

func TestWorker_JobTimeout(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{
		JobTimeout: 10 * time.Millisecond,
		Jobs: []Job{{
			Name:     "slow",
			Interval: time.Hour,
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
		}},
	})

	err := w.RunNow(context.Background(), "slow")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestWorker_Health(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{Pinger: &mockPinger{}})

	health := w.Health(context.Background())
	if health.Running {
		t.Error("expected not running")
	}
	if !health.StoreHealth {
		t.Error("expected store to be healthy")
	}
}

func TestWorker_Health_StoreError(t *testing.T) {
	w, _ := NewWorker(WorkerConfig{Pinger: &mockPinger{err: errors.New("connection failed")}})

	health := w.Health(context.Background())
	if health.StoreHealth {
		t.Error("expected store to be unhealthy")
	}
	if health.Error != "connection failed" {
		t.Errorf("expected error message, got %q", health.Error)
	}
}
