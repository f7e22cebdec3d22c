package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/cbodonnell/snake/pkg/game/types"
)

// Loop couples a GameManager with the one Scheduler that drives it.
type Loop struct {
	manager   *GameManager
	scheduler Scheduler

	lock   sync.Mutex
	paused bool
}

// NewLoop creates a loop whose scheduler is built by newScheduler around the loop's tick function.
func NewLoop(manager *GameManager, newScheduler func(tick TickFunc) Scheduler) *Loop {
	l := &Loop{
		manager: manager,
	}
	l.scheduler = newScheduler(l.tick)
	return l
}

// NewTickerLoop creates a loop driven by its own goroutine.
func NewTickerLoop(manager *GameManager, interval time.Duration) *Loop {
	return NewLoop(manager, func(tick TickFunc) Scheduler {
		return NewTickerScheduler(interval, tick)
	})
}

// NewFrameLoop creates a loop driven by the returned FrameScheduler's Advance.
func NewFrameLoop(manager *GameManager, interval time.Duration) (*Loop, *FrameScheduler) {
	var frameScheduler *FrameScheduler
	l := NewLoop(manager, func(tick TickFunc) Scheduler {
		frameScheduler = NewFrameScheduler(interval, tick)
		return frameScheduler
	})
	return l, frameScheduler
}

func (l *Loop) tick() bool {
	if err := l.manager.Tick(); err != nil {
		return false
	}
	return l.manager.Phase() == types.PhaseRunning
}

func (l *Loop) Manager() *GameManager {
	return l.manager
}

// Start starts an idle game and its timer.
func (l *Loop) Start() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.manager.Start(); err != nil {
		return err
	}
	l.paused = false
	l.scheduler.Start()
	return nil
}

// Restart stops the current timer before resetting the game and starting a new timer.
func (l *Loop) Restart() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if phase := l.manager.Phase(); phase == types.PhaseRunning {
		return fmt.Errorf("%w: cannot restart a running game", ErrPhaseMismatch)
	}
	l.scheduler.Stop()
	if err := l.manager.Restart(); err != nil {
		return err
	}
	l.paused = false
	l.scheduler.Start()
	return nil
}

// Pause stops the timer of a running game. The phase stays PhaseRunning.
func (l *Loop) Pause() bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.paused || l.manager.Phase() != types.PhaseRunning {
		return false
	}
	l.scheduler.Stop()
	l.paused = true
	return true
}

// Resume restarts the timer of a paused game.
func (l *Loop) Resume() bool {
	l.lock.Lock()
	defer l.lock.Unlock()

	if !l.paused || l.manager.Phase() != types.PhaseRunning {
		return false
	}
	l.paused = false
	l.scheduler.Start()
	return true
}

func (l *Loop) TogglePause() bool {
	if l.Paused() {
		return l.Resume()
	}
	return l.Pause()
}

func (l *Loop) Paused() bool {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.paused
}

// Stop cancels the timer, for example when the host tears the game down.
func (l *Loop) Stop() {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.scheduler.Stop()
}
