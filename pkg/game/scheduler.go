package game

import (
	"context"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game/constants"
)

// TickFunc runs one tick and reports whether the timer should keep firing.
type TickFunc func() bool

// Scheduler is the single timer handle driving a game.
// Start always stops a running timer first, so two timers never drive the same game.
type Scheduler interface {
	Start()
	Stop()
	Running() bool
}

// TickerScheduler fires the tick function from its own goroutine on a time.Ticker.
// Stop must not be called from inside the tick function.
type TickerScheduler struct {
	interval time.Duration
	tick     TickFunc

	lock   sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTickerScheduler(interval time.Duration, tick TickFunc) *TickerScheduler {
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}
	return &TickerScheduler{
		interval: interval,
		tick:     tick,
	}
}

func (s *TickerScheduler) Start() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(ctx, done)
}

func (s *TickerScheduler) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// a cancel racing the ticker wins
			if ctx.Err() != nil {
				return
			}
			if !s.tick() {
				return
			}
		}
	}
}

// Stop cancels the timer and waits for an in-flight tick to finish.
func (s *TickerScheduler) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.stop()
}

func (s *TickerScheduler) stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *TickerScheduler) Running() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// FrameScheduler is driven by a host frame loop, such as ebiten's Update, through Advance.
// It is not safe for concurrent use: call every method from the frame loop goroutine.
type FrameScheduler struct {
	interval time.Duration
	tick     TickFunc
	running  bool
	elapsed  time.Duration
}

func NewFrameScheduler(interval time.Duration, tick TickFunc) *FrameScheduler {
	if interval <= 0 {
		interval = constants.DefaultTickInterval
	}
	return &FrameScheduler{
		interval: interval,
		tick:     tick,
	}
}

func (s *FrameScheduler) Start() {
	s.running = true
	s.elapsed = 0
}

func (s *FrameScheduler) Stop() {
	s.running = false
	s.elapsed = 0
}

func (s *FrameScheduler) Running() bool {
	return s.running
}

// Advance accounts for dt of frame time and fires one tick per elapsed interval.
// At most constants.MaxTicksPerFrame ticks run per call; the remainder is dropped.
// It returns the number of ticks fired.
func (s *FrameScheduler) Advance(dt time.Duration) int {
	if !s.running {
		return 0
	}
	s.elapsed += dt

	ticks := 0
	for s.running && s.elapsed >= s.interval {
		s.elapsed -= s.interval
		ticks++
		if !s.tick() {
			s.Stop()
			break
		}
		if ticks >= constants.MaxTicksPerFrame {
			s.elapsed = 0
			break
		}
	}
	return ticks
}
