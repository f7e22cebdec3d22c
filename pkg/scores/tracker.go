package scores

import "sync"

// Tracker holds the process wide best score in memory.
// It is seeded once from Persistence.Load at startup.
type Tracker struct {
	lock sync.RWMutex
	best int
}

func NewTracker(initial int) *Tracker {
	if initial < 0 {
		initial = 0
	}
	return &Tracker{best: initial}
}

func (t *Tracker) Best() int {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.best
}

// Submit records score and reports whether it beat the previous best.
func (t *Tracker) Submit(score int) bool {
	t.lock.Lock()
	defer t.lock.Unlock()
	if score <= t.best {
		return false
	}
	t.best = score
	return true
}
