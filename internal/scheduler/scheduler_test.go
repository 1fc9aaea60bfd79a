package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTask struct {
	name     string
	interval time.Duration
	runs     atomic.Int32
	panics   bool
}

func (c *countingTask) Name() string            { return c.name }
func (c *countingTask) Interval() time.Duration { return c.interval }

func (c *countingTask) Run(ctx context.Context) error {
	c.runs.Add(1)
	if c.panics {
		panic("boom")
	}
	return nil
}

func TestScheduler_RunsImmediatelyAndOnInterval(t *testing.T) {
	s := New(context.Background())
	task := &countingTask{name: "counter", interval: 20 * time.Millisecond}
	require.NoError(t, s.AddTask(task))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return task.runs.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	s := New(context.Background())

	err := s.AddTask(&countingTask{name: "bad"})
	assert.Error(t, err)
	assert.Empty(t, s.tasks)
}

func TestScheduler_SurvivesPanic(t *testing.T) {
	s := New(context.Background())
	task := &countingTask{name: "panicky", interval: 10 * time.Millisecond, panics: true}
	require.NoError(t, s.AddTask(task))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return task.runs.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(context.Background())
	task := &countingTask{name: "counter", interval: time.Hour}
	require.NoError(t, s.AddTask(task))

	s.Start()
	s.Stop()
	s.Stop()

	runs := task.runs.Load()
	assert.Equal(t, int32(1), runs)
}
