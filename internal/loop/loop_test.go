package loop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestRunDueRespectsIntervals(t *testing.T) {
	s := New()
	var fast, slow int
	s.Every(10*time.Millisecond, func(time.Time) { fast++ })
	s.Every(100*time.Millisecond, func(time.Time) { slow++ })

	for i := range 100 {
		s.RunDue(t0.Add(time.Duration(i) * time.Millisecond))
	}

	assert.Equal(t, 10, fast)
	assert.Equal(t, 1, slow)
}

func TestRunDueOrder(t *testing.T) {
	s := New()
	var order []string
	s.Every(time.Millisecond, func(time.Time) { order = append(order, "gravity") })
	s.Every(time.Millisecond, func(time.Time) { order = append(order, "input") })

	n := s.RunDue(t0)

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"gravity", "input"}, order)
}

func TestSimulateStopsFromTask(t *testing.T) {
	s := New()
	runs := 0
	s.Every(10*time.Millisecond, func(time.Time) {
		runs++
		if runs == 50 {
			s.Stop()
		}
	})

	end, err := s.Simulate(context.Background(), t0, 10*time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 50, runs)
	assert.Equal(t, t0.Add(490*time.Millisecond), end)
	assert.True(t, s.Stopped())

	s.Stop() // idempotent
}

func TestSimulateHonorsContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	s.Every(time.Second, func(time.Time) { cancel() })

	_, err := s.Simulate(ctx, t0, time.Second)

	assert.ErrorIs(t, err, context.Canceled)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func TestRunStops(t *testing.T) {
	s := New(WithClock(fixedClock{now: t0}))
	seen := make(chan time.Time, 1)
	s.Every(time.Millisecond, func(now time.Time) {
		select {
		case seen <- now:
		default:
		}
		s.Stop()
	})

	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	assert.Equal(t, t0, <-seen)
}

func TestRunWithoutTasks(t *testing.T) {
	assert.NoError(t, New().Run(context.Background()))
}

func TestEveryRejectsZeroInterval(t *testing.T) {
	assert.Panics(t, func() { New().Every(0, func(time.Time) {}) })
}
