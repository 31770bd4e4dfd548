package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var processed int32
	done := make(chan struct{}, 3)
	q := NewQueue("test", func(ctx context.Context, job Job) error {
		atomic.AddInt32(&processed, 1)
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, q.Enqueue(Job{ID: "j", Type: "noop"}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("job not processed")
		}
	}
	assert.EqualValues(t, 3, atomic.LoadInt32(&processed))
}

func TestQueueRetriesThenSucceeds(t *testing.T) {
	var attempts int32
	outcomes := make(chan string, 4)
	q := NewQueue("retry", func(ctx context.Context, job Job) error {
		if atomic.AddInt32(&attempts, 1) < 2 {
			return errors.New("transient")
		}
		return nil
	}, QueueConfig{RetryDelay: 5 * time.Millisecond, Observer: func(_ string, _ Job, outcome string) {
		outcomes <- outcome
	}})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job{ID: "r1"}))
	assert.Equal(t, OutcomeRetried, <-outcomes)
	select {
	case outcome := <-outcomes:
		assert.Equal(t, OutcomeSucceeded, outcome)
	case <-time.After(time.Second):
		t.Fatal("retry never succeeded")
	}
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue("idle", func(context.Context, Job) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job{ID: "x"}))
}

func TestSchedulerTickRunsAllTasks(t *testing.T) {
	var mu sync.Mutex
	ran := make([]string, 0)
	fixed := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := NewScheduler(time.Hour, nil,
		Task{Name: "fails", Run: func(context.Context, time.Time) error {
			mu.Lock()
			ran = append(ran, "fails")
			mu.Unlock()
			return errors.New("boom")
		}},
		Task{Name: "ok", Run: func(_ context.Context, now time.Time) error {
			assert.Equal(t, fixed, now)
			mu.Lock()
			ran = append(ran, "ok")
			mu.Unlock()
			return nil
		}},
	)
	s.now = func() time.Time { return fixed }

	s.Tick(context.Background())
	assert.Equal(t, []string{"fails", "ok"}, ran)
}

func TestSchedulerStartStop(t *testing.T) {
	ticks := make(chan struct{}, 1)
	s := NewScheduler(time.Hour, nil, Task{Name: "t", Run: func(context.Context, time.Time) error {
		select {
		case ticks <- struct{}{}:
		default:
		}
		return nil
	}})
	s.Start(context.Background())
	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("initial tick not run")
	}
	s.Stop()
	s.Stop()
}
