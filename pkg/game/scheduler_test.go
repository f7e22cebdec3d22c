package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickerScheduler_stopsWhenTickReturnsFalse(t *testing.T) {
	var count atomic.Int32
	s := NewTickerScheduler(time.Millisecond, func() bool {
		return count.Add(1) < 3
	})

	s.Start()
	require.Eventually(t, func() bool { return !s.Running() }, time.Second, time.Millisecond)

	assert.Equal(t, int32(3), count.Load())
	s.Stop()
}

func TestTickerScheduler_restartDoesNotStack(t *testing.T) {
	var inFlight, maxInFlight atomic.Int32
	s := NewTickerScheduler(time.Millisecond, func() bool {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		if n > maxInFlight.Load() {
			maxInFlight.Store(n)
		}
		time.Sleep(100 * time.Microsecond)
		return true
	})

	for i := 0; i < 10; i++ {
		s.Start()
		time.Sleep(2 * time.Millisecond)
	}
	assert.True(t, s.Running())
	s.Stop()

	assert.False(t, s.Running())
	assert.Equal(t, int32(1), maxInFlight.Load())
}

func TestTickerScheduler_stopHaltsTicks(t *testing.T) {
	var count atomic.Int32
	s := NewTickerScheduler(time.Millisecond, func() bool {
		count.Add(1)
		return true
	})

	s.Start()
	require.Eventually(t, func() bool { return count.Load() > 0 }, time.Second, time.Millisecond)
	s.Stop()

	stopped := count.Load()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, count.Load())

	// stopping twice is harmless
	s.Stop()
}

func TestFrameScheduler_Advance(t *testing.T) {
	count := 0
	s := NewFrameScheduler(100*time.Millisecond, func() bool {
		count++
		return true
	})

	assert.Equal(t, 0, s.Advance(time.Second), "not started")

	s.Start()
	assert.Equal(t, 0, s.Advance(60*time.Millisecond))
	assert.Equal(t, 1, s.Advance(60*time.Millisecond))
	assert.Equal(t, 1, s.Advance(100*time.Millisecond))
	assert.Equal(t, 2, count)

	// a long frame is capped
	assert.Equal(t, constants.MaxTicksPerFrame, s.Advance(10*time.Second))
	assert.Equal(t, 0, s.Advance(50*time.Millisecond))

	s.Stop()
	assert.False(t, s.Running())
	assert.Equal(t, 0, s.Advance(time.Second))
}

func TestFrameScheduler_stopsWhenTickReturnsFalse(t *testing.T) {
	count := 0
	s := NewFrameScheduler(10*time.Millisecond, func() bool {
		count++
		return false
	})

	s.Start()
	assert.Equal(t, 1, s.Advance(time.Second))
	assert.False(t, s.Running())
	assert.Equal(t, 1, count)
}
