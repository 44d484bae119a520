package crons

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleaner struct {
	calls atomic.Int32
	block chan struct{}
}

func (c *countingCleaner) CleanupExpired(ctx context.Context, now time.Time) int {
	if c.block != nil {
		<-c.block
	}
	c.calls.Add(1)
	return 0
}

func TestStart_RunsOnceImmediately(t *testing.T) {
	cl := &countingCleaner{}
	c, err := Start("@hourly", cl)
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return cl.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestStart_DoesNotWaitForFirstPass(t *testing.T) {
	cl := &countingCleaner{block: make(chan struct{})}

	c, err := Start("@hourly", cl)
	require.NoError(t, err)
	defer c.Stop()
	assert.Equal(t, int32(0), cl.calls.Load())

	close(cl.block)
	assert.Eventually(t, func() bool { return cl.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	cl := &countingCleaner{}
	_, err := Start("every now and then", cl)
	assert.Error(t, err)
	assert.Equal(t, int32(0), cl.calls.Load())
}
