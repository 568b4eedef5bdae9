package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs a push every interval until it is stopped.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pusher    *Pusher
	timeout   time.Duration
}

// NewScheduler creates a scheduler. Each push gets timeout to finish; 0 means no limit.
func NewScheduler(pusher *Pusher, timeout time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		pusher:    pusher,
		timeout:   timeout,
	}
}

// Start pushes immediately and then every interval without blocking.
func (s *Scheduler) Start(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("sync interval must be positive: %s", interval)
	}
	if _, err := s.scheduler.Every(interval).StartImmediately().Do(s.push); err != nil {
		return fmt.Errorf("scheduler.Do() > %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled pushes.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) push() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if _, err := s.pusher.Push(ctx); err != nil {
		slog.Default().Warn("failed to push local state", "error", err)
	}
}
