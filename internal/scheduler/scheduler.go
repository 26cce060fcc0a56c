package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic task. Run receives a context cancelled when the job is
// removed or the scheduler stops.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

type runningJob struct {
	job    Job
	cancel context.CancelFunc
}

type Scheduler struct {
	jobs   map[string]*runningJob // job name -> job
	mu     sync.RWMutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*runningJob),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add starts a job, replacing any running job with the same name. The first
// run happens immediately.
func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx.Err() != nil {
		return
	}

	if existing, exists := s.jobs[job.Name]; exists {
		existing.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	s.jobs[job.Name] = &runningJob{job: job, cancel: jobCancel}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(jobCtx, job)
	}()

	slog.Debug("Scheduled job", "job", job.Name, "interval", job.Interval)
}

func (s *Scheduler) Remove(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job, exists := s.jobs[name]; exists {
		job.cancel()
		delete(s.jobs, name)
	}
}

// Stop cancels every job and waits for in-flight runs to return.
func (s *Scheduler) Stop() {
	s.cancel()

	s.mu.Lock()
	for _, job := range s.jobs {
		job.cancel()
	}
	s.jobs = make(map[string]*runningJob)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) Status() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"active_jobs": len(s.jobs),
		"running":     s.ctx.Err() == nil,
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		s.execute(ctx, job)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	start := time.Now()

	if err := job.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Warn("Job failed", "job", job.Name, "error", err, "duration", time.Since(start))
	}
}
