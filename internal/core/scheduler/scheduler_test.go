package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddRemove(t *testing.T) {
	s := New(time.UTC)
	noop := func(context.Context) {}

	require.NoError(t, s.AddJob("snapshot", "0 5 0 * * *", noop))
	require.NoError(t, s.AddJob("audit-retention", "0 30 3 * * *", noop))
	require.NoError(t, s.AddJob("snapshot", "0 10 0 * * *", noop))
	assert.Equal(t, []string{"audit-retention", "snapshot"}, s.Jobs())

	s.RemoveJob("snapshot")
	assert.Equal(t, []string{"audit-retention"}, s.Jobs())

	_, ok := s.NextRun("snapshot")
	assert.False(t, ok)
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := New(nil)
	err := s.AddJob("bad", "every day", func(context.Context) {})
	assert.Error(t, err)
	assert.Empty(t, s.Jobs())
}

func TestScheduler_RunsJob(t *testing.T) {
	s := New(time.UTC)
	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddJob("tick", "* * * * * *", func(ctx context.Context) {
		select {
		case ran <- struct{}{}:
		default:
		}
	}))

	s.Start()
	defer s.Stop()

	next, ok := s.NextRun("tick")
	assert.True(t, ok)
	assert.False(t, next.IsZero())

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}
