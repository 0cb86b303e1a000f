package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Job is a named unit of background work run on a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	// RunOnStart runs the job once before the first tick
	RunOnStart bool
	Run        func(ctx context.Context) error
}

// Pinger reports whether a dependency the jobs rely on is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Worker runs periodic maintenance jobs such as rebuilding the
// leaderboard index and purging expired sessions.
type Worker struct {
	jobs    []Job
	pinger  Pinger
	logger  *slog.Logger
	timeout time.Duration

	// Internal state
	mu      sync.RWMutex
	running bool
	status  map[string]*JobStatus
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// WorkerConfig holds configuration for the worker.
type WorkerConfig struct {
	Jobs   []Job
	Pinger Pinger // optional, reported by Health
	Logger *slog.Logger
	// JobTimeout bounds a single run. Defaults to 5 minutes.
	JobTimeout time.Duration
}

// NewWorker creates a new job worker. Jobs without a name, a positive
// interval or a Run func are rejected.
func NewWorker(cfg WorkerConfig) (*Worker, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.JobTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	status := make(map[string]*JobStatus, len(cfg.Jobs))
	for _, job := range cfg.Jobs {
		if job.Name == "" || job.Interval <= 0 || job.Run == nil {
			return nil, fmt.Errorf("invalid job %q", job.Name)
		}
		if _, dup := status[job.Name]; dup {
			return nil, fmt.Errorf("duplicate job %q", job.Name)
		}
		status[job.Name] = &JobStatus{Name: job.Name, Interval: job.Interval.String()}
	}

	return &Worker{
		jobs:    cfg.Jobs,
		pinger:  cfg.Pinger,
		logger:  logger,
		timeout: timeout,
		status:  status,
	}, nil
}

// Start launches one goroutine per job.
// It runs until Stop is called or context is cancelled.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.mu.Unlock()

	w.logger.Info("worker starting", "jobs", len(w.jobs))

	var wg sync.WaitGroup
	for _, job := range w.jobs {
		wg.Add(1)
		go func(job Job) {
			defer wg.Done()
			w.jobLoop(ctx, job)
		}(job)
	}

	go func() {
		wg.Wait()
		close(w.doneCh)
	}()

	return nil
}

// Stop gracefully stops the worker, waiting for in-flight runs.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	close(w.stopCh)
	doneCh := w.doneCh
	w.mu.Unlock()

	<-doneCh

	w.mu.Lock()
	w.running = false
	w.mu.Unlock()

	w.logger.Info("worker stopped")
}

// Wait blocks until the worker stops.
func (w *Worker) Wait() {
	w.mu.RLock()
	doneCh := w.doneCh
	w.mu.RUnlock()
	if doneCh == nil {
		return
	}
	<-doneCh
}

// RunNow runs a job immediately on the caller's goroutine.
func (w *Worker) RunNow(ctx context.Context, name string) error {
	for _, job := range w.jobs {
		if job.Name == name {
			return w.runJob(ctx, job)
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

func (w *Worker) jobLoop(ctx context.Context, job Job) {
	logger := w.logger.With("job", job.Name)
	logger.Info("job scheduled", "interval", job.Interval)

	if job.RunOnStart {
		_ = w.runJob(ctx, job)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("job context cancelled")
			return
		case <-w.stopCh:
			return
		case <-ticker.C:
			_ = w.runJob(ctx, job)
		}
	}
}

// runJob executes one run and records the outcome. Panics are recovered
// so one bad run does not take the process down.
func (w *Worker) runJob(ctx context.Context, job Job) (err error) {
	logger := w.logger.With("job", job.Name)
	runCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	startTime := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
		duration := time.Since(startTime)
		w.record(job.Name, startTime, err)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("job cancelled", "duration", duration)
				return
			}
			logger.Error("job failed", "duration", duration, "error", err)
			return
		}
		logger.Debug("job completed", "duration", duration)
	}()

	return job.Run(runCtx)
}

func (w *Worker) record(name string, at time.Time, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	st, ok := w.status[name]
	if !ok {
		return
	}
	st.Runs++
	st.LastRun = at
	st.LastError = ""
	if err != nil {
		st.Failures++
		st.LastError = err.Error()
	}
}

// JobStatus is the last known outcome of one job.
type JobStatus struct {
	Name      string    `json:"name"`
	Interval  string    `json:"interval"`
	Runs      int       `json:"runs"`
	Failures  int       `json:"failures"`
	LastRun   time.Time `json:"last_run,omitempty"`
	LastError string    `json:"last_error,omitempty"`
}

// Health returns health status of the worker.
type Health struct {
	Running     bool        `json:"running"`
	StoreHealth bool        `json:"store_health"`
	Jobs        []JobStatus `json:"jobs"`
	Error       string      `json:"error,omitempty"`
}

// Health returns the health status of the worker, jobs in registration order.
func (w *Worker) Health(ctx context.Context) Health {
	w.mu.RLock()
	health := Health{
		Running: w.running,
		Jobs:    make([]JobStatus, 0, len(w.jobs)),
	}
	for _, job := range w.jobs {
		health.Jobs = append(health.Jobs, *w.status[job.Name])
	}
	w.mu.RUnlock()

	health.StoreHealth = true
	if w.pinger != nil {
		if err := w.pinger.Ping(ctx); err != nil {
			health.StoreHealth = false
			health.Error = err.Error()
		}
	}

	return health
}
