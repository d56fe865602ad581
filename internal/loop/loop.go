// Package loop runs periodic game tasks cooperatively on one goroutine.
// Tasks never run concurrently with each other, so they may share state
// without locking.
package loop

import (
	"context"
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Task is called with the time it was run at.
type Task func(now time.Time)

type entry struct {
	interval time.Duration
	next     time.Time
	fn       Task
}

// Scheduler polls registered tasks and runs those that are due.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	tasks   []*entry
	stop    chan struct{}
	stopped bool
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock replaces the wall clock, e.g. for tests.
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// New creates an idle scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		clock: wallClock{},
		stop:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Every registers fn to run at most once per interval. The first run is
// due immediately.
func (s *Scheduler) Every(interval time.Duration, fn Task) {
	if interval <= 0 {
		panic("loop: interval must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &entry{interval: interval, fn: fn})
}

// RunDue runs every task whose deadline has passed, in registration order.
// Returns the number of tasks run. Frontends that own their own frame loop
// call this once per frame.
func (s *Scheduler) RunDue(now time.Time) int {
	s.mu.Lock()
	var due []*entry
	for _, e := range s.tasks {
		if e.next.IsZero() || !now.Before(e.next) {
			e.next = now.Add(e.interval)
			due = append(due, e)
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		if s.Stopped() {
			break
		}
		e.fn(now)
	}
	return len(due)
}

// Run polls at the shortest registered interval until ctx is done or Stop
// is called.
func (s *Scheduler) Run(ctx context.Context) error {
	resolution := s.resolution()
	if resolution == 0 {
		return nil
	}
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	s.RunDue(s.clock.Now())
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-ticker.C:
			s.RunDue(s.clock.Now())
		}
	}
}

// Simulate advances a virtual clock from start in fixed steps, running due
// tasks at each step, without sleeping. It returns when Stop is called or
// ctx is done, along with the last simulated time.
func (s *Scheduler) Simulate(ctx context.Context, start time.Time, step time.Duration) (time.Time, error) {
	now := start
	for {
		select {
		case <-ctx.Done():
			return now, ctx.Err()
		case <-s.stop:
			return now, nil
		default:
		}
		s.RunDue(now)
		if s.Stopped() {
			return now, nil
		}
		now = now.Add(step)
	}
}

// Stop ends Run or Simulate. Safe to call more than once and from tasks.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		s.stopped = true
		close(s.stop)
	}
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func (s *Scheduler) resolution() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res time.Duration
	for _, e := range s.tasks {
		if res == 0 || e.interval < res {
			res = e.interval
		}
	}
	return res
}
