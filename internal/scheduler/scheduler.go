package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Task interface for scheduled tasks
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// Scheduler runs each task once on start and then on its interval.
type Scheduler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	tasks    []Task
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new task scheduler
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make([]Task, 0),
	}
}

// AddTask adds a task to the scheduler. Tasks with a non-positive interval
// are rejected.
func (s *Scheduler) AddTask(task Task) error {
	if task.Interval() <= 0 {
		return fmt.Errorf("task %s: interval must be positive, got %s", task.Name(), task.Interval())
	}
	s.tasks = append(s.tasks, task)
	return nil
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	slog.Info("Starting task scheduler")
	for _, task := range s.tasks {
		s.wg.Add(1)
		go s.runTask(task)
	}
	slog.Info("Task scheduler started", "task_count", len(s.tasks))
}

// Stop cancels all tasks and waits for running ones to return. It is safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		slog.Info("Stopping task scheduler")
		s.cancel()
		s.wg.Wait()
		slog.Info("Task scheduler stopped")
	})
}

// runTask runs a single task on its schedule
func (s *Scheduler) runTask(task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	s.runOnce(task)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(task)
		}
	}
}

// runOnce runs task and logs its error. A panicking task is logged and
// scheduled again on the next tick.
func (s *Scheduler) runOnce(task Task) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Task panicked", "task", task.Name(), "panic", r)
		}
	}()

	start := time.Now()
	if err := task.Run(s.ctx); err != nil {
		if s.ctx.Err() != nil {
			return
		}
		slog.Error("Error running task", "task", task.Name(), "error", err)
		return
	}
	slog.Debug("Task completed", "task", task.Name(), "duration", time.Since(start))
}
