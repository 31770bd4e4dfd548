package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a periodic unit of work run by the Scheduler.
type Task struct {
	Name string
	Run  func(ctx context.Context, now time.Time) error
}

// Scheduler invokes every registered task on a fixed interval.
type Scheduler struct {
	interval time.Duration
	tasks    []Task
	logger   *zap.Logger
	now      func() time.Time

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

// NewScheduler constructs a scheduler; interval defaults to 30s.
func NewScheduler(interval time.Duration, logger *zap.Logger, tasks ...Task) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{interval: interval, tasks: tasks, logger: logger, now: time.Now}
}

// Start runs all tasks once immediately and then on every tick until Stop.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.Tick(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Tick(ctx)
			}
		}
	}()
	s.logger.Info("scheduler started", zap.Duration("interval", s.interval), zap.Int("tasks", len(s.tasks)))
}

// Stop halts the ticker and waits for an in-flight tick.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.logger.Info("scheduler stopped")
}

// Tick runs every task once. Failures are logged and do not stop other tasks.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now().UTC()
	for _, task := range s.tasks {
		if ctx.Err() != nil {
			return
		}
		if err := task.Run(ctx, now); err != nil {
			s.logger.Warn("scheduled task failed", zap.String("task", task.Name), zap.Error(err))
		}
	}
}
