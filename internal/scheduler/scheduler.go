package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// pollTick bounds shutdown latency: the loop re-checks due-times and
	// cancellation at this granularity.
	pollTick = 1 * time.Second
	// errBackoff is the fixed pause after any task failure before the loop
	// resumes polling.
	errBackoff = 60 * time.Second
)

// Task is one periodically scheduled unit of work.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// TaskStatus is a snapshot of one task's scheduling state.
type TaskStatus struct {
	Name      string    `json:"name"`
	Interval  string    `json:"interval"`
	LastRun   time.Time `json:"last_run,omitempty"`
	NextRun   time.Time `json:"next_run"`
	Runs      int       `json:"runs"`
	Errors    int       `json:"errors"`
	LastError string    `json:"last_error,omitempty"`
}

// Scheduler drives a set of tasks on independent due-times. Each task fires
// when its due-time has passed and is then rescheduled a full interval out.
// A task failure is logged and answered with a fixed backoff; the loop only
// terminates on context cancellation.
type Scheduler struct {
	tasks []*Task
	clock Clock
	log   zerolog.Logger

	mu     sync.Mutex
	status map[string]*TaskStatus
}

func New(clock Clock, log zerolog.Logger, tasks ...*Task) *Scheduler {
	status := make(map[string]*TaskStatus, len(tasks))
	for _, t := range tasks {
		status[t.Name] = &TaskStatus{Name: t.Name, Interval: t.Interval.String()}
	}
	return &Scheduler{
		tasks:  tasks,
		clock:  clock,
		log:    log,
		status: status,
	}
}

// Start runs the loop until ctx is cancelled. All tasks are due immediately
// on start.
func (s *Scheduler) Start(ctx context.Context) error {
	s.log.Info().Int("tasks", len(s.tasks)).Msg("scheduler started")

	next := make([]time.Time, len(s.tasks))
	start := s.clock.Now()
	for i := range next {
		next[i] = start
	}

	for {
		if err := ctx.Err(); err != nil {
			s.log.Info().Msg("scheduler stopped")
			return err
		}

		now := s.clock.Now()
		for i, task := range s.tasks {
			if now.Before(next[i]) {
				continue
			}
			next[i] = now.Add(task.Interval)

			err := s.runTask(ctx, task)
			s.record(task.Name, now, next[i], err)
			if err != nil {
				if ctx.Err() != nil {
					break
				}
				s.log.Error().Err(err).Str("task", task.Name).Dur("backoff", errBackoff).Msg("task failed, backing off")
				if serr := s.clock.Sleep(ctx, errBackoff); serr != nil {
					return serr
				}
			}
		}

		if err := s.clock.Sleep(ctx, pollTick); err != nil {
			s.log.Info().Msg("scheduler stopped")
			return err
		}
	}
}

// runTask invokes the task and converts a panic into an error so one task
// can never take the process down.
func (s *Scheduler) runTask(ctx context.Context, task *Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in task %s: %v", task.Name, r)
		}
	}()
	return task.Run(ctx)
}

func (s *Scheduler) record(name string, ranAt, nextRun time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.status[name]
	st.LastRun = ranAt
	st.NextRun = nextRun
	st.Runs++
	if err != nil {
		st.Errors++
		st.LastError = err.Error()
	}
}

// Status returns a snapshot of every task's scheduling state.
func (s *Scheduler) Status() []TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TaskStatus, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *s.status[t.Name])
	}
	return out
}
